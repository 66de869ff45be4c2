package engine

import "testing"

func TestScreenMetricsWithoutWrap(t *testing.T) {
	s := NewEditSession(WithContent("ab\nabcdef\n"))

	if s.ScreenLength() != 3 {
		t.Errorf("expected 3 screen rows, got %d", s.ScreenLength())
	}
	if s.ScreenWidth() != 6 {
		t.Errorf("expected width 6, got %d", s.ScreenWidth())
	}
}

func TestScreenWrap(t *testing.T) {
	s := NewEditSession(WithContent("abcdefghij\nxy"), WithWrapLimit(4))

	if s.ScreenLength() != 4 {
		t.Fatalf("expected 4 screen rows, got %d", s.ScreenLength())
	}
	if s.ScreenWidth() != 4 {
		t.Errorf("expected width 4, got %d", s.ScreenWidth())
	}

	tests := []struct {
		row, col int
		want     Point
	}{
		{0, 0, Point{Row: 0, Column: 0}},
		{1, 0, Point{Row: 0, Column: 4}},
		{1, 2, Point{Row: 0, Column: 6}},
		{1, 10, Point{Row: 0, Column: 7}},
		{2, 5, Point{Row: 0, Column: 10}},
		{3, 1, Point{Row: 1, Column: 1}},
		{10, 0, Point{Row: 1, Column: 2}},
		{-1, 3, Point{}},
	}
	for _, tt := range tests {
		if got := s.ScreenToDocumentPosition(tt.row, tt.col); got != tt.want {
			t.Errorf("ScreenToDocumentPosition(%d, %d): expected %v, got %v", tt.row, tt.col, tt.want, got)
		}
	}

	row, col := s.DocumentToScreenPosition(Point{Row: 0, Column: 6})
	if row != 1 || col != 2 {
		t.Errorf("expected screen (1, 2), got (%d, %d)", row, col)
	}
	row, col = s.DocumentToScreenPosition(Point{Row: 1, Column: 2})
	if row != 3 || col != 2 {
		t.Errorf("expected screen (3, 2), got (%d, %d)", row, col)
	}
}

func TestScreenTabsAndWideCharacters(t *testing.T) {
	s := NewEditSession(WithContent("a\tb\n日本"))

	if s.ScreenWidth() != 5 {
		t.Errorf("expected width 5 for tab expansion, got %d", s.ScreenWidth())
	}
	if got := s.ScreenToDocumentPosition(0, 2); got != (Point{Row: 0, Column: 1}) {
		t.Errorf("expected column inside tab to map to the tab, got %v", got)
	}
	if got := s.ScreenToDocumentPosition(1, 3); got != (Point{Row: 1, Column: 1}) {
		t.Errorf("expected second wide character, got %v", got)
	}
	if _, col := s.DocumentToScreenPosition(Point{Row: 0, Column: 2}); col != 4 {
		t.Errorf("expected screen column 4 after tab, got %d", col)
	}
}

func TestScreenMetricsAreLive(t *testing.T) {
	s := NewEditSession(WithContent("abcdefgh"))
	if s.ScreenLength() != 1 {
		t.Fatalf("expected 1 screen row, got %d", s.ScreenLength())
	}
	s.SetWrapLimit(2)
	if s.ScreenLength() != 4 {
		t.Errorf("expected 4 screen rows after wrapping, got %d", s.ScreenLength())
	}
	if _, err := s.Insert(Point{Row: 0, Column: 8}, "\nz"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ScreenLength() != 5 {
		t.Errorf("expected 5 screen rows after insert, got %d", s.ScreenLength())
	}
}

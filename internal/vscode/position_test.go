package vscode

import (
	"errors"
	"testing"

	"github.com/dshills/vscompat/internal/engine"
)

func TestPositionRoundTrip(t *testing.T) {
	tests := []Position{{0, 0}, {0, 7}, {12, 0}, {3, 44}}
	for _, p := range tests {
		pt, err := p.ToNative()
		if err != nil {
			t.Fatalf("ToNative(%s): %v", p, err)
		}
		if back := PositionFromNative(pt); back != p {
			t.Errorf("expected %s, got %s", p, back)
		}
	}
}

func TestPositionRejectsNegative(t *testing.T) {
	for _, p := range []Position{{-1, 0}, {0, -1}} {
		if _, err := p.ToNative(); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("%s: expected ErrInvalidCoordinate, got %v", p, err)
		}
	}
	if _, err := NewPosition(-3, 2); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestPositionCompare(t *testing.T) {
	a := Position{1, 5}
	b := Position{2, 0}
	if !a.IsBefore(b) || b.IsBefore(a) || !b.IsAfter(a) {
		t.Error("expected line to dominate character")
	}
	if !a.IsBeforeOrEqual(a) || !a.IsAfterOrEqual(a) || !a.IsEqual(Position{1, 5}) {
		t.Error("expected position to equal itself")
	}
	moved, err := a.Translate(1, -5)
	if err != nil || moved != b {
		t.Errorf("expected %s, got %s (%v)", b, moved, err)
	}
}

func TestRangeRoundTripAndOrdering(t *testing.T) {
	r := NewRange(Position{4, 2}, Position{1, 9})
	if r.Start != (Position{1, 9}) || r.End != (Position{4, 2}) {
		t.Fatalf("expected ordered range, got %s", r)
	}
	nr, err := r.ToNative()
	if err != nil {
		t.Fatal(err)
	}
	if back := RangeFromNative(nr); !back.IsEqual(r) {
		t.Errorf("expected %s, got %s", r, back)
	}

	reversed := RangeFromNative(engine.NewRange(3, 0, 0, 2))
	if reversed.Start != (Position{0, 2}) {
		t.Errorf("expected native range to be ordered, got %s", reversed)
	}
}

func TestRangeOperations(t *testing.T) {
	a, _ := NewRangeFromCoords(0, 0, 2, 0)
	b, _ := NewRangeFromCoords(1, 3, 3, 1)

	if !a.Contains(Position{1, 100}) || a.Contains(Position{2, 1}) {
		t.Error("unexpected Contains result")
	}
	in, ok := a.Intersection(b)
	if !ok || in.Start != (Position{1, 3}) || in.End != (Position{2, 0}) {
		t.Errorf("unexpected intersection %s", in)
	}
	u := a.Union(b)
	if u.Start != (Position{0, 0}) || u.End != (Position{3, 1}) {
		t.Errorf("unexpected union %s", u)
	}
	c, _ := NewRangeFromCoords(5, 0, 6, 0)
	if _, ok := a.Intersection(c); ok {
		t.Error("expected disjoint ranges not to intersect")
	}
	if !a.ContainsRange(Range{Start: Position{0, 1}, End: Position{1, 0}}) {
		t.Error("expected nested range to be contained")
	}
	if _, err := NewRangeFromCoords(0, -1, 0, 0); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestSelectionDirection(t *testing.T) {
	s := NewSelection(Position{2, 4}, Position{0, 1})
	if !s.IsReversed() {
		t.Error("expected reversed selection")
	}
	if s.Start != (Position{0, 1}) || s.End != (Position{2, 4}) {
		t.Errorf("expected ordered range, got %s", s.Range)
	}

	sess := engine.NewEditSession(engine.WithContent("abc\ndef"))
	sess.Selection().SetSelectionRange(engine.NewRange(0, 1, 1, 2), true)
	got := SelectionFromNative(sess.Selection())
	if got.Anchor != (Position{1, 2}) || got.Active != (Position{0, 1}) {
		t.Errorf("unexpected selection %+v", got)
	}
}

func TestEndOfLineRoundTrip(t *testing.T) {
	for _, eol := range []EndOfLine{LF, CRLF} {
		mode, err := eol.ToNative()
		if err != nil {
			t.Fatalf("%s: %v", eol, err)
		}
		back, err := EndOfLineFromNative(mode, eol.Sequence())
		if err != nil || back != eol {
			t.Errorf("expected %s, got %s (%v)", eol, back, err)
		}
	}
}

func TestEndOfLineErrors(t *testing.T) {
	if _, err := EndOfLine(3).ToNative(); !errors.Is(err, ErrInvalidEndOfLine) {
		t.Errorf("expected ErrInvalidEndOfLine, got %v", err)
	}
	if _, err := EndOfLineFromNative(engine.NewLineAuto, "\r"); !errors.Is(err, ErrUnrepresentableEOL) {
		t.Errorf("expected ErrUnrepresentableEOL, got %v", err)
	}
	got, err := EndOfLineFromNative(engine.NewLineAuto, "\r\n")
	if err != nil || got != CRLF {
		t.Errorf("expected CRLF, got %s (%v)", got, err)
	}
}

func TestUnsupportedError(t *testing.T) {
	err := unsupported("window.showQuickPick")
	if !errors.Is(err, ErrUnsupported) {
		t.Error("expected error to wrap ErrUnsupported")
	}
	var ue *UnsupportedError
	if !errors.As(err, &ue) || ue.Member != "window.showQuickPick" {
		t.Errorf("unexpected error %v", err)
	}
}

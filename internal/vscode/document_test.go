package vscode

import (
	"errors"
	"testing"

	"github.com/dshills/vscompat/internal/engine"
)

func TestDocumentOffsetsAreInverse(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"lf", "one\ntwo\n\nfour"},
		{"crlf", "one\r\ntwo\r\n\r\nfour"},
		{"surrogates", "a😀b\nc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, _, _ := newTestAPI(t, tt.content)
			doc := api.Window.ActiveTextEditor().Document()
			total := engine.UTF16Len(tt.content)
			for off := 0; off <= total; off++ {
				p, err := doc.PositionAt(off)
				if err != nil {
					t.Fatal(err)
				}
				back, err := doc.OffsetAt(p)
				if err != nil {
					t.Fatal(err)
				}
				// Offsets between \r and \n snap to the line end.
				if back != off && !(tt.name == "crlf" && back == off-1) {
					t.Errorf("offset %d: position %s maps back to %d", off, p, back)
				}
			}
		})
	}
}

func TestDocumentPositionAtRejectsNegative(t *testing.T) {
	api, _, _ := newTestAPI(t, "abc")
	doc := api.Window.ActiveTextEditor().Document()
	if _, err := doc.PositionAt(-1); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestDocumentIsLive(t *testing.T) {
	api, m, _ := newTestAPI(t, "hello")
	doc := api.Window.ActiveTextEditor().Document()
	if doc.Version() != 1 {
		t.Errorf("expected version 1, got %d", doc.Version())
	}

	if _, err := activeSession(t, m).Insert(engine.Point{Column: 5}, "!\nbye"); err != nil {
		t.Fatal(err)
	}

	text, _ := doc.GetText(nil)
	if text != "hello!\nbye" {
		t.Errorf("expected live text, got %q", text)
	}
	if doc.LineCount() != 2 || doc.Version() != 2 || !doc.IsDirty() {
		t.Errorf("unexpected state: lines=%d version=%d dirty=%v", doc.LineCount(), doc.Version(), doc.IsDirty())
	}
	r, _ := NewRangeFromCoords(0, 5, 1, 1)
	if got, _ := doc.GetText(&r); got != "!\nb" {
		t.Errorf("expected %q, got %q", "!\nb", got)
	}
}

func TestDocumentEquality(t *testing.T) {
	api, _, _ := newTestAPI(t, "a", "b")
	docs := api.Workspace.TextDocuments()
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	active := api.Window.ActiveTextEditor().Document()
	if !active.Equal(docs[1]) || active.Equal(docs[0]) {
		t.Error("expected documents to compare by session")
	}
	if active == docs[1] {
		t.Error("expected distinct wrappers")
	}
}

func TestDocumentLineAt(t *testing.T) {
	api, _, _ := newTestAPI(t, "  foo\n\t\nbar")
	doc := api.Window.ActiveTextEditor().Document()

	tests := []struct {
		line      int
		text      string
		firstChar int
		blank     bool
		breakEnd  Position
	}{
		{0, "  foo", 2, false, Position{1, 0}},
		{1, "\t", 1, true, Position{2, 0}},
		{2, "bar", 0, false, Position{2, 3}},
	}
	for _, tt := range tests {
		tl, err := doc.LineAt(tt.line)
		if err != nil {
			t.Fatal(err)
		}
		if tl.Text != tt.text || tl.FirstNonWhitespaceCharacterIndex != tt.firstChar || tl.IsEmptyOrWhitespace != tt.blank {
			t.Errorf("line %d: unexpected %+v", tt.line, tl)
		}
		if tl.RangeIncludingLineBreak.End != tt.breakEnd {
			t.Errorf("line %d: expected break end %s, got %s", tt.line, tt.breakEnd, tl.RangeIncludingLineBreak.End)
		}
	}
	if _, err := doc.LineAt(3); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestDocumentEOLAndValidate(t *testing.T) {
	api, _, _ := newTestAPI(t, "a\r\nb")
	doc := api.Window.ActiveTextEditor().Document()
	if eol, err := doc.EOL(); err != nil || eol != CRLF {
		t.Errorf("expected CRLF, got %s (%v)", eol, err)
	}
	if p := doc.ValidatePosition(Position{9, 9}); p != (Position{1, 1}) {
		t.Errorf("expected clamp to 1:1, got %s", p)
	}
	if doc.LanguageID() != "plaintext" {
		t.Errorf("expected plaintext, got %s", doc.LanguageID())
	}
	if !doc.IsUntitled() {
		t.Error("expected untitled document")
	}
}

func TestDocumentWordRange(t *testing.T) {
	api, _, _ := newTestAPI(t, "foo bar")
	doc := api.Window.ActiveTextEditor().Document()
	r, ok := doc.GetWordRangeAtPosition(Position{0, 5})
	if !ok || r.Start != (Position{0, 4}) || r.End != (Position{0, 7}) {
		t.Errorf("unexpected word range %s", r)
	}
	if _, ok := doc.GetWordRangeAtPosition(Position{0, 3}); !ok {
		t.Error("expected word touching position 3")
	}
}

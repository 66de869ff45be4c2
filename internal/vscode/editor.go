package vscode

import (
	"github.com/dshills/vscompat/internal/engine"
	"github.com/dshills/vscompat/internal/host"
)

// ViewColumn identifies an editor group. The host has a single group.
type ViewColumn int

const (
	// ViewColumnActive refers to the group holding the active editor.
	ViewColumnActive ViewColumn = -1
	// ViewColumnOne is the first, and only, editor group.
	ViewColumnOne ViewColumn = 1
)

// TextEditorOptions are the editor settings backed by the session.
type TextEditorOptions struct {
	TabSize int
}

// TextEditor is a live view of the editor showing a session. Selection and
// viewport values are read from the engine on every call.
type TextEditor struct {
	session *engine.EditSession
	manager *host.EditorManager
}

func newTextEditor(s *engine.EditSession, m *host.EditorManager) *TextEditor {
	if s == nil {
		return nil
	}
	return &TextEditor{session: s, manager: m}
}

// Document returns the document shown in the editor.
func (e *TextEditor) Document() *TextDocument {
	return newTextDocument(e.session, e.manager)
}

// Equal reports whether e and other show the same session.
func (e *TextEditor) Equal(other *TextEditor) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.session.ID() == other.session.ID()
}

// Selection returns the primary selection.
func (e *TextEditor) Selection() Selection {
	return SelectionFromNative(e.session.Selection())
}

// Selections returns all selections. The engine keeps one.
func (e *TextEditor) Selections() []Selection {
	return []Selection{e.Selection()}
}

// SetSelection moves the engine selection.
func (e *TextEditor) SetSelection(sel Selection) error {
	r, err := sel.ToNative()
	if err != nil {
		return err
	}
	e.session.Selection().SetSelectionRange(r, sel.IsReversed())
	return nil
}

// SetSelections moves the engine selection to the first element of sels.
// Extra selections are ignored.
func (e *TextEditor) SetSelections(sels []Selection) error {
	if len(sels) == 0 {
		return nil
	}
	return e.SetSelection(sels[0])
}

// VisibleRanges returns the document range currently on screen.
func (e *TextEditor) VisibleRanges() []Range {
	first := e.session.ScrollTop()
	last := e.session.ScreenLength() - 1
	if rows := e.session.VisibleRows(); rows > 0 && first+rows-1 < last {
		last = first + rows - 1
	}
	start := e.session.ScreenToDocumentPosition(first, 0)
	end := e.session.ScreenToDocumentPosition(last, e.session.ScreenWidth())
	return []Range{RangeFromNative(engine.RangeFromPoints(start, end))}
}

// Options returns the editor options.
func (e *TextEditor) Options() TextEditorOptions {
	return TextEditorOptions{TabSize: e.session.TabSize()}
}

// SetOptions applies the editor options. A zero tab size is left unchanged.
func (e *TextEditor) SetOptions(o TextEditorOptions) {
	if o.TabSize > 0 {
		e.session.SetTabSize(o.TabSize)
	}
}

// ViewColumn returns the editor group of the editor.
func (e *TextEditor) ViewColumn() ViewColumn {
	return ViewColumnOne
}

// Edit runs fn with an edit builder whose operations apply immediately.
// It reports whether every operation succeeded.
func (e *TextEditor) Edit(fn func(edit *TextEditorEdit)) (bool, error) {
	b := newTextEditorEdit(e.session)
	fn(b)
	if b.err != nil {
		return false, b.err
	}
	return true, nil
}

// InsertSnippet is not supported.
func (e *TextEditor) InsertSnippet(snippet string, loc Location) (bool, error) {
	return false, unsupported("TextEditor.insertSnippet")
}

// SetDecorations is not supported.
func (e *TextEditor) SetDecorations(decorationType string, ranges []Range) error {
	return unsupported("TextEditor.setDecorations")
}

// RevealRange is not supported.
func (e *TextEditor) RevealRange(r Range) error {
	return unsupported("TextEditor.revealRange")
}

// Show is not supported.
func (e *TextEditor) Show(column ViewColumn) error {
	return unsupported("TextEditor.show")
}

// Hide is not supported.
func (e *TextEditor) Hide() error {
	return unsupported("TextEditor.hide")
}

package vscode

import "github.com/dshills/vscompat/internal/engine"

// Location is anything an edit can target: a Position, Range or Selection.
type Location interface {
	nativeRange() (engine.Range, error)
}

// TextEditorEdit applies edits to a session as they are requested.
// The first failure is kept and reported by TextEditor.Edit.
type TextEditorEdit struct {
	session *engine.EditSession
	err     error
}

func newTextEditorEdit(s *engine.EditSession) *TextEditorEdit {
	return &TextEditorEdit{session: s}
}

func (e *TextEditorEdit) record(err error) error {
	if err != nil && e.err == nil {
		e.err = err
	}
	return err
}

// Replace replaces the text at loc with text. A position inserts.
func (e *TextEditorEdit) Replace(loc Location, text string) error {
	r, err := loc.nativeRange()
	if err != nil {
		return e.record(err)
	}
	_, err = e.session.Replace(r, text)
	return e.record(err)
}

// Insert inserts text at p.
func (e *TextEditorEdit) Insert(p Position, text string) error {
	pt, err := p.ToNative()
	if err != nil {
		return e.record(err)
	}
	_, err = e.session.Insert(pt, text)
	return e.record(err)
}

// Delete removes the text at loc.
func (e *TextEditorEdit) Delete(loc Location) error {
	r, err := loc.nativeRange()
	if err != nil {
		return e.record(err)
	}
	_, err = e.session.Remove(r)
	return e.record(err)
}

// SetEndOfLine changes the document's line terminator.
func (e *TextEditorEdit) SetEndOfLine(eol EndOfLine) error {
	mode, err := eol.ToNative()
	if err != nil {
		return e.record(err)
	}
	return e.record(e.session.SetNewLineMode(mode))
}

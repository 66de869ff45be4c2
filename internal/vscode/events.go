package vscode

import (
	"strings"

	"github.com/dshills/vscompat/internal/engine"
)

// TextDocumentContentChangeEvent describes one edit. Range is in the
// coordinates of the document before the edit.
type TextDocumentContentChangeEvent struct {
	Range       Range
	RangeOffset int
	RangeLength int
	Text        string
}

// TextDocumentChangeReason is always zero; the engine does not report undo
// or redo as a reason.
type TextDocumentChangeReason int

// Change reasons.
const (
	ChangeReasonUndo TextDocumentChangeReason = 1
	ChangeReasonRedo TextDocumentChangeReason = 2
)

// TextDocumentChangeEvent is delivered for every engine delta.
type TextDocumentChangeEvent struct {
	Document       *TextDocument
	ContentChanges []TextDocumentContentChangeEvent
	Reason         TextDocumentChangeReason
}

// contentChange converts an engine delta. The session has already applied
// it, which leaves the start of the delta valid for offset lookups.
func contentChange(s *engine.EditSession, d engine.Delta) TextDocumentContentChangeEvent {
	text := d.Text(s.NewLineCharacter())
	c := TextDocumentContentChangeEvent{
		RangeOffset: s.PositionToIndex(d.Start),
	}
	start := PositionFromNative(d.Start)
	switch d.Action {
	case engine.DeltaInsert:
		c.Range = Range{Start: start, End: start}
		c.Text = text
	case engine.DeltaRemove:
		c.Range = NewRange(start, PositionFromNative(d.End))
		c.RangeLength = engine.UTF16Len(text)
	}
	return c
}

// TextEditorSelectionChangeKind tells what caused a selection change.
// Zero means unknown, which is all the engine reports.
type TextEditorSelectionChangeKind int

// Selection change kinds.
const (
	SelectionChangeKeyboard TextEditorSelectionChangeKind = 1
	SelectionChangeMouse    TextEditorSelectionChangeKind = 2
	SelectionChangeCommand  TextEditorSelectionChangeKind = 3
)

// TextEditorSelectionChangeEvent carries the selections at the time the
// event fired.
type TextEditorSelectionChangeEvent struct {
	TextEditor *TextEditor
	Selections []Selection
	Kind       TextEditorSelectionChangeKind
}

// TextDocumentSaveReason tells why a document is saved.
type TextDocumentSaveReason int

// Save reasons.
const (
	SaveReasonManual     TextDocumentSaveReason = 1
	SaveReasonAfterDelay TextDocumentSaveReason = 2
	SaveReasonFocusOut   TextDocumentSaveReason = 3
)

// TextDocumentWillSaveEvent is delivered before a save. The engine has no
// pre-save hook, so it fires when a document is loaded.
type TextDocumentWillSaveEvent struct {
	Document *TextDocument
	Reason   TextDocumentSaveReason
}

// WaitUntil cannot delay the save.
func (e *TextDocumentWillSaveEvent) WaitUntil(fn func() error) error {
	return unsupported("TextDocumentWillSaveEvent.waitUntil")
}

// ConfigurationChangeEvent lists the settings that changed.
type ConfigurationChangeEvent struct {
	keys []string
}

// Keys returns the changed keys.
func (e ConfigurationChangeEvent) Keys() []string {
	return append([]string(nil), e.keys...)
}

// AffectsConfiguration reports whether section or anything under or above
// it changed.
func (e ConfigurationChangeEvent) AffectsConfiguration(section string) bool {
	for _, k := range e.keys {
		if k == section || strings.HasPrefix(k, section+".") || strings.HasPrefix(section, k+".") {
			return true
		}
	}
	return false
}

type emitter interface {
	On(event string, fn engine.Listener) engine.ListenerID
	Off(event string, id engine.ListenerID) bool
}

// listen subscribes fn to events on em. The returned disposable removes the
// subscriptions and then releases deps.
func listen(em emitter, events []string, fn engine.Listener, deps []Disposable) Disposable {
	ids := make([]engine.ListenerID, len(events))
	for i, ev := range events {
		ids[i] = em.On(ev, fn)
	}
	return ToDisposable(func() {
		for i, ev := range events {
			em.Off(ev, ids[i])
		}
		for _, d := range deps {
			if d != nil {
				d.Dispose()
			}
		}
	})
}

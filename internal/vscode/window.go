package vscode

import (
	"sync"
	"time"

	"github.com/dshills/vscompat/internal/engine"
	"github.com/dshills/vscompat/internal/host"
	"github.com/dshills/vscompat/internal/logging"
)

// Window exposes the active editor and user notifications.
type Window struct {
	manager       *host.EditorManager
	toaster       host.Toaster
	toastDuration time.Duration
	log           *logging.Logger
}

// ActiveTextEditor returns the editor showing the active file, or nil.
func (w *Window) ActiveTextEditor() *TextEditor {
	return newTextEditor(w.manager.Editor().Session(), w.manager)
}

// VisibleTextEditors returns the editors on screen. Only the active one is.
func (w *Window) VisibleTextEditors() []*TextEditor {
	if ed := w.ActiveTextEditor(); ed != nil {
		return []*TextEditor{ed}
	}
	return nil
}

// OnDidChangeActiveTextEditor calls listener after the active file changes.
func (w *Window) OnDidChangeActiveTextEditor(listener func(*TextEditor), deps ...Disposable) Disposable {
	return listen(w.manager, []string{host.EventSwitchFile}, func(data any) {
		f, ok := data.(*host.File)
		if !ok {
			return
		}
		listener(newTextEditor(f.Session(), w.manager))
	}, deps)
}

// selectionState identifies what a selection listener last saw.
type selectionState struct {
	session string
	anchor  engine.Point
	lead    engine.Point
}

// OnDidChangeTextEditorSelection calls listener when the cursor or selection
// of the active editor moves. The engine raises up to three events for one
// move; listener is called once, for the first event that shows a new state.
func (w *Window) OnDidChangeTextEditorSelection(listener func(TextEditorSelectionChangeEvent), deps ...Disposable) Disposable {
	var (
		mu   sync.Mutex
		last selectionState
	)
	events := []string{engine.EventSelectWord, engine.EventChangeSelection, engine.EventChangeCursor}
	return listen(w.manager.Editor(), events, func(any) {
		s := w.manager.Editor().Session()
		if s == nil {
			return
		}
		sel := s.Selection()
		cur := selectionState{session: s.ID(), anchor: sel.Anchor(), lead: sel.Lead()}
		mu.Lock()
		if cur == last {
			mu.Unlock()
			return
		}
		last = cur
		mu.Unlock()

		ed := newTextEditor(s, w.manager)
		listener(TextEditorSelectionChangeEvent{TextEditor: ed, Selections: ed.Selections()})
	}, deps)
}

// OnDidChangeTextEditorOptions calls listener when the active session's tab
// size changes.
func (w *Window) OnDidChangeTextEditorOptions(listener func(*TextEditor, TextEditorOptions), deps ...Disposable) Disposable {
	var (
		mu      sync.Mutex
		watched *engine.EditSession
		id      engine.ListenerID
	)
	attach := func(s *engine.EditSession) {
		mu.Lock()
		defer mu.Unlock()
		if watched != nil {
			watched.Off(engine.EventChangeTabSize, id)
		}
		watched = s
		if s == nil {
			return
		}
		id = s.On(engine.EventChangeTabSize, func(any) {
			ed := newTextEditor(s, w.manager)
			listener(ed, ed.Options())
		})
	}
	attach(w.manager.Editor().Session())
	sw := listen(w.manager.Editor(), []string{engine.EventChangeSession}, func(data any) {
		pair, ok := data.([2]*engine.EditSession)
		if ok {
			attach(pair[1])
		}
	}, deps)
	return ToDisposable(func() {
		sw.Dispose()
		attach(nil)
	})
}

func (w *Window) show(level, message string) {
	switch level {
	case "error":
		w.log.Error("%s", message)
	case "warning":
		w.log.Warn("%s", message)
	default:
		w.log.Info("%s", message)
	}
	if w.toaster != nil {
		w.toaster.Toast(message, w.toastDuration)
	}
}

// ShowErrorMessage shows message as a toast. Items cannot be offered, so
// the returned choice is always empty.
func (w *Window) ShowErrorMessage(message string, items ...string) string {
	w.show("error", message)
	return ""
}

// ShowWarningMessage shows message as a toast. The returned choice is always empty.
func (w *Window) ShowWarningMessage(message string, items ...string) string {
	w.show("warning", message)
	return ""
}

// ShowInformationMessage shows message as a toast. The returned choice is always empty.
func (w *Window) ShowInformationMessage(message string, items ...string) string {
	w.show("info", message)
	return ""
}

// ShowQuickPick is not supported.
func (w *Window) ShowQuickPick(items []string) (string, error) {
	return "", unsupported("window.showQuickPick")
}

// ShowInputBox is not supported.
func (w *Window) ShowInputBox(prompt string) (string, error) {
	return "", unsupported("window.showInputBox")
}

// CreateOutputChannel is not supported.
func (w *Window) CreateOutputChannel(name string) error {
	return unsupported("window.createOutputChannel")
}

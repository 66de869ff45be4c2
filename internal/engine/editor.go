package engine

import "sync"

// Editor events.
const (
	EventChangeSession = "changeSession"
	EventSelectWord    = "select-word"
)

// ChangeEvent is the payload of the editor's change event.
type ChangeEvent struct {
	Session *EditSession
	Delta   Delta
}

// Editor binds a command registry to the session currently being edited.
// It re-emits the current session's change, changeSelection and changeCursor
// events so listeners survive session switches.
type Editor struct {
	Emitter

	mu        sync.RWMutex
	commands  *CommandManager
	session   *EditSession
	listeners []detach
}

type detach func()

// NewEditor creates an editor showing session. session may be nil.
func NewEditor(session *EditSession) *Editor {
	e := &Editor{commands: NewCommandManager()}
	if session != nil {
		e.SetSession(session)
	}
	return e
}

// Commands returns the editor's command registry.
func (e *Editor) Commands() *CommandManager {
	return e.commands
}

// Session returns the session being edited.
func (e *Editor) Session() *EditSession {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.session
}

// SetSession switches the editor to session.
func (e *Editor) SetSession(session *EditSession) {
	e.mu.Lock()
	if e.session == session {
		e.mu.Unlock()
		return
	}
	old := e.session
	for _, off := range e.listeners {
		off()
	}
	e.listeners = nil
	e.session = session
	if session != nil {
		e.listeners = e.forward(session)
	}
	e.mu.Unlock()

	e.Emit(EventChangeSession, [2]*EditSession{old, session})
}

// forward re-emits session events on the editor.
func (e *Editor) forward(s *EditSession) []detach {
	changeID := s.On(EventChange, func(data any) {
		if d, ok := data.(Delta); ok {
			e.Emit(EventChange, ChangeEvent{Session: s, Delta: d})
		}
	})
	sel := s.Selection()
	selID := sel.On(EventChangeSelection, func(data any) {
		e.Emit(EventChangeSelection, sel)
	})
	curID := sel.On(EventChangeCursor, func(data any) {
		e.Emit(EventChangeCursor, sel)
	})
	return []detach{
		func() { s.Off(EventChange, changeID) },
		func() { sel.Off(EventChangeSelection, selID) },
		func() { sel.Off(EventChangeCursor, curID) },
	}
}

// SelectWord selects the word under the cursor of the current session.
func (e *Editor) SelectWord() {
	s := e.Session()
	if s == nil {
		return
	}
	s.Selection().SelectWord()
	e.Emit(EventSelectWord, s.Selection())
}

// ExecCommand runs a command from the editor's registry against this editor.
func (e *Editor) ExecCommand(name string, args ...any) (any, error) {
	return e.commands.Exec(name, e, args)
}

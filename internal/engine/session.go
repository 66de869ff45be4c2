package engine

import (
	"sync"

	"github.com/google/uuid"
)

// Session events.
const (
	EventChange            = "change"
	EventChangeNewLineMode = "changeNewLineMode"
	EventChangeTabSize     = "changeTabSize"
	EventChangeScrollTop   = "changeScrollTop"
)

// EditSession is the engine's unit of editing: one document, its selection,
// and the view metrics used to map between document and screen coordinates.
//
// Mutations take the session lock, release it, then emit. Listeners may
// therefore call back into the session.
type EditSession struct {
	Emitter

	mu          sync.RWMutex
	id          string
	doc         *Document
	selection   *Selection
	tabSize     int
	wrapLimit   int
	scrollTop   int
	visibleRows int
	readOnly    bool
	revision    int

	initContent string
}

// NewEditSession creates a session.
func NewEditSession(opts ...Option) *EditSession {
	s := &EditSession{
		id:      uuid.NewString(),
		doc:     NewDocument(""),
		tabSize: DefaultTabSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.initContent != "" {
		mode := s.doc.newLineMode
		s.doc.setValue(s.initContent)
		s.doc.newLineMode = mode
		s.initContent = ""
	}
	s.selection = newSelection(s.doc)
	return s
}

// ID returns the stable identifier of the session.
func (s *EditSession) ID() string {
	return s.id
}

// Document returns the session's document.
func (s *EditSession) Document() *Document {
	return s.doc
}

// Selection returns the session's selection.
func (s *EditSession) Selection() *Selection {
	return s.selection
}

// Revision returns the number of deltas the session has accepted.
func (s *EditSession) Revision() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// ReadOnly reports whether mutations are rejected.
func (s *EditSession) ReadOnly() bool {
	return s.readOnly
}

// Value returns the whole text.
func (s *EditSession) Value() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Value()
}

// Length returns the number of document rows.
func (s *EditSession) Length() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Length()
}

// Line returns the text of a row.
func (s *EditSession) Line(row int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Line(row)
}

// LineLength returns the length of a row in UTF-16 code units.
func (s *EditSession) LineLength(row int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.LineLength(row)
}

// ClipPosition clamps p into the document.
func (s *EditSession) ClipPosition(p Point) Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ClipPosition(p)
}

// TextRange returns the text covered by r.
func (s *EditSession) TextRange(r Range) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.TextRange(r)
}

// PositionToIndex converts a point into a UTF-16 character index.
func (s *EditSession) PositionToIndex(p Point) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.PositionToIndex(p)
}

// IndexToPosition converts a UTF-16 character index into a point.
func (s *EditSession) IndexToPosition(index int) Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.IndexToPosition(index)
}

// NewLineMode returns the document's new line mode.
func (s *EditSession) NewLineMode() NewLineMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.NewLineMode()
}

// NewLineCharacter returns the terminator the document currently joins rows with.
func (s *EditSession) NewLineCharacter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.NewLineCharacter()
}

// SetNewLineMode changes the document's new line mode.
func (s *EditSession) SetNewLineMode(mode NewLineMode) error {
	if !mode.valid() {
		return ErrInvalidNewLineMode
	}
	s.mu.Lock()
	changed := s.doc.newLineMode != mode
	s.doc.newLineMode = mode
	s.mu.Unlock()

	if changed {
		s.Emit(EventChangeNewLineMode, mode)
	}
	return nil
}

// TabSize returns the tab size.
func (s *EditSession) TabSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tabSize
}

// SetTabSize changes the tab size. Non-positive sizes are ignored.
func (s *EditSession) SetTabSize(size int) {
	if size <= 0 {
		return
	}
	s.mu.Lock()
	changed := s.tabSize != size
	s.tabSize = size
	s.mu.Unlock()

	if changed {
		s.Emit(EventChangeTabSize, size)
	}
}

// WrapLimit returns the soft wrap column, or zero when wrapping is off.
func (s *EditSession) WrapLimit() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wrapLimit
}

// SetWrapLimit changes the soft wrap column. Zero disables wrapping.
func (s *EditSession) SetWrapLimit(columns int) {
	if columns < 0 {
		return
	}
	s.mu.Lock()
	s.wrapLimit = columns
	s.mu.Unlock()
}

// ScrollTop returns the first visible screen row.
func (s *EditSession) ScrollTop() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scrollTop
}

// SetScrollTop scrolls so that row is the first visible screen row.
func (s *EditSession) SetScrollTop(row int) {
	if row < 0 {
		row = 0
	}
	s.mu.Lock()
	changed := s.scrollTop != row
	s.scrollTop = row
	s.mu.Unlock()

	if changed {
		s.Emit(EventChangeScrollTop, row)
	}
}

// VisibleRows returns the number of visible screen rows, or zero when the
// whole session is visible.
func (s *EditSession) VisibleRows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visibleRows
}

// SetVisibleRows changes the viewport height.
func (s *EditSession) SetVisibleRows(rows int) {
	if rows < 0 {
		return
	}
	s.mu.Lock()
	s.visibleRows = rows
	s.mu.Unlock()
}

// Insert inserts text at p and returns the end of the inserted text.
func (s *EditSession) Insert(p Point, text string) (Point, error) {
	if s.readOnly {
		return p, ErrReadOnly
	}
	s.mu.Lock()
	end, delta := s.doc.insert(p, text)
	if delta != nil {
		s.revision++
	}
	s.mu.Unlock()

	s.applied(delta)
	return end, nil
}

// Remove deletes the text covered by r and returns the start of the range.
func (s *EditSession) Remove(r Range) (Point, error) {
	if s.readOnly {
		return r.Ordered().Start, ErrReadOnly
	}
	s.mu.Lock()
	start, delta := s.doc.remove(r)
	if delta != nil {
		s.revision++
	}
	s.mu.Unlock()

	s.applied(delta)
	return start, nil
}

// Replace removes r and inserts text at its start. It returns the end of the
// inserted text. Each half emits its own delta.
func (s *EditSession) Replace(r Range, text string) (Point, error) {
	start, err := s.Remove(r)
	if err != nil {
		return start, err
	}
	return s.Insert(start, text)
}

// SetValue replaces the whole text.
func (s *EditSession) SetValue(text string) error {
	s.mu.RLock()
	last := s.doc.Length() - 1
	end := Point{Row: last, Column: s.doc.LineLength(last)}
	s.mu.RUnlock()

	if _, err := s.Remove(Range{End: end}); err != nil {
		return err
	}
	_, err := s.Insert(Point{}, text)
	return err
}

// applied moves the selection and notifies listeners about delta.
func (s *EditSession) applied(delta *Delta) {
	if delta == nil {
		return
	}
	s.Emit(EventChange, *delta)
	s.selection.onDelta(delta)
}

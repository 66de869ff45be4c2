package engine

import (
	"unicode"
	"unicode/utf16"
)

// Selection events.
const (
	EventChangeCursor    = "changeCursor"
	EventChangeSelection = "changeSelection"
)

// Selection tracks one anchor/lead pair over a document.
// The lead is the cursor; the anchor is where the selection started.
// When anchor == lead the selection is empty.
type Selection struct {
	Emitter

	doc    *Document
	anchor Point
	lead   Point
}

func newSelection(doc *Document) *Selection {
	return &Selection{doc: doc}
}

// Anchor returns the fixed end of the selection.
func (s *Selection) Anchor() Point {
	return s.anchor
}

// Lead returns the cursor end of the selection.
func (s *Selection) Lead() Point {
	return s.lead
}

// Cursor is an alias for Lead.
func (s *Selection) Cursor() Point {
	return s.lead
}

// IsEmpty returns true if the selection has no extent.
func (s *Selection) IsEmpty() bool {
	return s.anchor == s.lead
}

// IsBackwards returns true if the lead precedes the anchor.
func (s *Selection) IsBackwards() bool {
	return s.lead.Before(s.anchor)
}

// Range returns the selected range with Start <= End.
func (s *Selection) Range() Range {
	return RangeFromPoints(s.anchor, s.lead).Ordered()
}

// MoveCursorTo collapses the selection to p.
func (s *Selection) MoveCursorTo(p Point) {
	p = s.doc.ClipPosition(p)
	s.set(p, p)
}

// SelectTo keeps the anchor and moves the lead to p.
func (s *Selection) SelectTo(p Point) {
	s.set(s.anchor, s.doc.ClipPosition(p))
}

// SetSelectionRange selects r. When reverse is true the lead is placed at
// r.Start, otherwise at r.End.
func (s *Selection) SetSelectionRange(r Range, reverse bool) {
	r = r.Ordered()
	start := s.doc.ClipPosition(r.Start)
	end := s.doc.ClipPosition(r.End)
	if reverse {
		s.set(end, start)
	} else {
		s.set(start, end)
	}
}

// ClearSelection collapses the selection onto the lead.
func (s *Selection) ClearSelection() {
	s.set(s.lead, s.lead)
}

// WordRange returns the range of the word touching p, or an empty range at p
// if there is none.
func (s *Selection) WordRange(p Point) Range {
	p = s.doc.ClipPosition(p)
	units := utf16.Encode([]rune(s.doc.Line(p.Row)))
	start, end := p.Column, p.Column
	for start > 0 && isWordUnit(units[start-1]) {
		start--
	}
	for end < len(units) && isWordUnit(units[end]) {
		end++
	}
	return NewRange(p.Row, start, p.Row, end)
}

// SelectWord selects the word under the cursor.
func (s *Selection) SelectWord() {
	r := s.WordRange(s.lead)
	s.set(r.Start, r.End)
}

func isWordUnit(u uint16) bool {
	if utf16.IsSurrogate(rune(u)) {
		return true
	}
	r := rune(u)
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// set updates both ends and emits changeCursor and changeSelection as needed.
func (s *Selection) set(anchor, lead Point) {
	wasEmpty := s.IsEmpty()
	cursorMoved := lead != s.lead
	rangeChanged := anchor != s.anchor || lead != s.lead

	s.anchor = anchor
	s.lead = lead

	if cursorMoved {
		s.Emit(EventChangeCursor, s)
	}
	if rangeChanged && !(wasEmpty && s.IsEmpty()) {
		s.Emit(EventChangeSelection, s)
	}
}

// onDelta shifts both ends to follow an accepted delta.
func (s *Selection) onDelta(d *Delta) {
	s.set(shiftPoint(s.anchor, d), shiftPoint(s.lead, d))
}

// shiftPoint moves p so it keeps pointing at the same text after d.
func shiftPoint(p Point, d *Delta) Point {
	switch d.Action {
	case DeltaInsert:
		if p.Before(d.Start) {
			return p
		}
		if p.Row == d.Start.Row {
			return Point{Row: d.End.Row, Column: d.End.Column + p.Column - d.Start.Column}
		}
		return Point{Row: p.Row + d.End.Row - d.Start.Row, Column: p.Column}
	case DeltaRemove:
		if !p.After(d.Start) {
			return p
		}
		if !p.After(d.End) {
			return d.Start
		}
		if p.Row == d.End.Row {
			return Point{Row: d.Start.Row, Column: d.Start.Column + p.Column - d.End.Column}
		}
		return Point{Row: p.Row - (d.End.Row - d.Start.Row), Column: p.Column}
	}
	return p
}

package engine

import (
	"regexp"
	"strings"
)

// NewLineMode selects the line terminator the document joins rows with.
type NewLineMode string

// New line modes understood by the engine.
const (
	NewLineUnix    NewLineMode = "unix"    // \n
	NewLineWindows NewLineMode = "windows" // \r\n
	NewLineAuto    NewLineMode = "auto"    // detected from content, \n if none
)

func (m NewLineMode) valid() bool {
	switch m {
	case NewLineUnix, NewLineWindows, NewLineAuto:
		return true
	default:
		return false
	}
}

var (
	lineSplitter    = regexp.MustCompile(`\r\n|\r|\n`)
	newLineDetector = regexp.MustCompile(`\r\n|\r|\n`)
)

// splitLines splits text on any line terminator.
func splitLines(text string) []string {
	return lineSplitter.Split(text, -1)
}

// DeltaAction identifies the kind of a document delta.
type DeltaAction string

// Delta actions.
const (
	DeltaInsert DeltaAction = "insert"
	DeltaRemove DeltaAction = "remove"
)

// Delta describes one accepted mutation of a document.
// For inserts, Start..End is the span the new text occupies after the edit.
// For removals, Start..End is the span the removed text occupied before it.
type Delta struct {
	Action DeltaAction
	Start  Point
	End    Point
	Lines  []string
}

// Text returns the delta's text joined with the given line terminator.
func (d Delta) Text(newLine string) string {
	return strings.Join(d.Lines, newLine)
}

// Document holds the rows of a session's text.
// Rows never contain line terminators.
type Document struct {
	lines       []string
	newLineMode NewLineMode
	autoNewLine string
}

// NewDocument creates a document holding text.
func NewDocument(text string) *Document {
	d := &Document{newLineMode: NewLineAuto}
	d.setValue(text)
	return d
}

func (d *Document) setValue(text string) {
	d.detectNewLine(text)
	d.lines = splitLines(text)
}

func (d *Document) detectNewLine(text string) {
	if m := newLineDetector.FindString(text); m != "" {
		d.autoNewLine = m
	} else {
		d.autoNewLine = "\n"
	}
}

// NewLineMode returns the configured new line mode.
func (d *Document) NewLineMode() NewLineMode {
	return d.newLineMode
}

// NewLineCharacter returns the terminator used when joining rows.
func (d *Document) NewLineCharacter() string {
	switch d.newLineMode {
	case NewLineWindows:
		return "\r\n"
	case NewLineUnix:
		return "\n"
	default:
		return d.autoNewLine
	}
}

// Value returns the whole document text.
func (d *Document) Value() string {
	return strings.Join(d.lines, d.NewLineCharacter())
}

// Length returns the number of rows. A document always has at least one row.
func (d *Document) Length() int {
	return len(d.lines)
}

// Line returns the text of a row, or "" if the row does not exist.
func (d *Document) Line(row int) string {
	if row < 0 || row >= len(d.lines) {
		return ""
	}
	return d.lines[row]
}

// Lines returns a copy of the rows between first and last inclusive.
func (d *Document) Lines(first, last int) []string {
	if first < 0 {
		first = 0
	}
	if last >= len(d.lines) {
		last = len(d.lines) - 1
	}
	if last < first {
		return nil
	}
	out := make([]string, last-first+1)
	copy(out, d.lines[first:last+1])
	return out
}

// LineLength returns the length of a row in UTF-16 code units.
func (d *Document) LineLength(row int) int {
	return utf16Len(d.Line(row))
}

// ClipPosition clamps p into the document.
func (d *Document) ClipPosition(p Point) Point {
	if p.Row < 0 {
		return Point{}
	}
	if p.Row >= len(d.lines) {
		last := len(d.lines) - 1
		return Point{Row: last, Column: d.LineLength(last)}
	}
	if p.Column < 0 {
		p.Column = 0
	}
	if n := d.LineLength(p.Row); p.Column > n {
		p.Column = n
	}
	return p
}

// TextRange returns the text covered by r.
func (d *Document) TextRange(r Range) string {
	r = r.Ordered()
	start := d.ClipPosition(r.Start)
	end := d.ClipPosition(r.End)
	if start.Row == end.Row {
		return sliceUTF16(d.lines[start.Row], start.Column, end.Column)
	}
	parts := make([]string, 0, end.Row-start.Row+1)
	first := d.lines[start.Row]
	parts = append(parts, first[byteIndex(first, start.Column):])
	parts = append(parts, d.lines[start.Row+1:end.Row]...)
	last := d.lines[end.Row]
	parts = append(parts, last[:byteIndex(last, end.Column)])
	return strings.Join(parts, d.NewLineCharacter())
}

// PositionToIndex converts a point into a character index counted in UTF-16
// code units, with each row terminator counting as its own length.
func (d *Document) PositionToIndex(p Point) int {
	p = d.ClipPosition(p)
	nl := utf16Len(d.NewLineCharacter())
	index := 0
	for row := 0; row < p.Row; row++ {
		index += utf16Len(d.lines[row]) + nl
	}
	return index + p.Column
}

// IndexToPosition converts a UTF-16 character index into a point.
// Indexes past the end map to the end of the document.
func (d *Document) IndexToPosition(index int) Point {
	if index <= 0 {
		return Point{}
	}
	nl := utf16Len(d.NewLineCharacter())
	for row, line := range d.lines {
		n := utf16Len(line)
		if index <= n {
			return Point{Row: row, Column: index}
		}
		index -= n + nl
		if index < 0 {
			// Inside a two-unit terminator; snap to the row end.
			return Point{Row: row, Column: n}
		}
	}
	last := len(d.lines) - 1
	return Point{Row: last, Column: d.LineLength(last)}
}

// insert places text at p and returns the end of the inserted text.
func (d *Document) insert(p Point, text string) (Point, *Delta) {
	p = d.ClipPosition(p)
	if text == "" {
		return p, nil
	}
	if len(d.lines) == 1 && d.lines[0] == "" {
		d.detectNewLine(text)
	}
	inserted := splitLines(text)
	line := d.lines[p.Row]
	cut := byteIndex(line, p.Column)
	head, tail := line[:cut], line[cut:]

	var end Point
	if len(inserted) == 1 {
		d.lines[p.Row] = head + inserted[0] + tail
		end = Point{Row: p.Row, Column: p.Column + utf16Len(inserted[0])}
	} else {
		last := inserted[len(inserted)-1]
		rows := make([]string, 0, len(d.lines)+len(inserted)-1)
		rows = append(rows, d.lines[:p.Row]...)
		rows = append(rows, head+inserted[0])
		rows = append(rows, inserted[1:len(inserted)-1]...)
		rows = append(rows, last+tail)
		rows = append(rows, d.lines[p.Row+1:]...)
		d.lines = rows
		end = Point{Row: p.Row + len(inserted) - 1, Column: utf16Len(last)}
	}
	return end, &Delta{Action: DeltaInsert, Start: p, End: end, Lines: inserted}
}

// remove deletes the text covered by r and returns its start.
func (d *Document) remove(r Range) (Point, *Delta) {
	r = r.Ordered()
	start := d.ClipPosition(r.Start)
	end := d.ClipPosition(r.End)
	if start == end {
		return start, nil
	}
	removed := splitLines(d.TextRange(Range{Start: start, End: end}))

	first := d.lines[start.Row]
	last := d.lines[end.Row]
	joined := first[:byteIndex(first, start.Column)] + last[byteIndex(last, end.Column):]

	rows := make([]string, 0, len(d.lines)-(end.Row-start.Row))
	rows = append(rows, d.lines[:start.Row]...)
	rows = append(rows, joined)
	rows = append(rows, d.lines[end.Row+1:]...)
	d.lines = rows
	return start, &Delta{Action: DeltaRemove, Start: start, End: end, Lines: removed}
}

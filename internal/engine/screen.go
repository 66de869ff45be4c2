package engine

import (
	"github.com/rivo/uniseg"
)

// cell is one grapheme cluster laid out on screen.
type cell struct {
	column int // UTF-16 column of the cluster start
	units  int // UTF-16 length of the cluster
	width  int // screen columns occupied
}

// segment is one screen row produced by a document row.
type segment struct {
	row   int
	cells []cell
	width int
}

// startColumn returns the UTF-16 column the segment starts at.
func (seg segment) startColumn(lineLen int) int {
	if len(seg.cells) == 0 {
		return lineLen
	}
	return seg.cells[0].column
}

// layoutRow splits a document row into screen segments.
// Tabs advance to the next tab stop; other clusters use their display width.
func (s *EditSession) layoutRow(row int) []segment {
	line := s.doc.Line(row)
	var (
		segs   []segment
		cur    = segment{row: row}
		column int
	)
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		str := g.Str()
		units := utf16Len(str)
		width := g.Width()
		if str == "\t" {
			width = s.tabSize - cur.width%s.tabSize
		}
		if s.wrapLimit > 0 && cur.width > 0 && cur.width+width > s.wrapLimit {
			segs = append(segs, cur)
			cur = segment{row: row}
		}
		cur.cells = append(cur.cells, cell{column: column, units: units, width: width})
		cur.width += width
		column += units
	}
	return append(segs, cur)
}

// layout lays out every row. It is recomputed on each call because wrapping,
// tab size and content can change between reads.
func (s *EditSession) layout() []segment {
	var all []segment
	for row := 0; row < s.doc.Length(); row++ {
		all = append(all, s.layoutRow(row)...)
	}
	return all
}

// ScreenLength returns the number of screen rows the session occupies.
func (s *EditSession) ScreenLength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.layout())
}

// ScreenWidth returns the width in screen columns of the widest screen row.
func (s *EditSession) ScreenWidth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	width := 0
	for _, seg := range s.layout() {
		if seg.width > width {
			width = seg.width
		}
	}
	return width
}

// ScreenToDocumentPosition converts a screen row/column into a document point.
// Rows past the end map to the end of the document; columns past the end of
// a screen row map to the end of that row.
func (s *EditSession) ScreenToDocumentPosition(screenRow, screenColumn int) Point {
	s.mu.RLock()
	defer s.mu.RUnlock()

	segs := s.layout()
	if screenRow < 0 {
		return Point{}
	}
	if screenRow >= len(segs) {
		last := s.doc.Length() - 1
		return Point{Row: last, Column: s.doc.LineLength(last)}
	}

	seg := segs[screenRow]
	lineLen := s.doc.LineLength(seg.row)
	column := seg.startColumn(lineLen)
	wrapped := screenRow+1 < len(segs) && segs[screenRow+1].row == seg.row
	x := 0
	for i, c := range seg.cells {
		if x+c.width > screenColumn {
			return Point{Row: seg.row, Column: c.column}
		}
		x += c.width
		column = c.column + c.units
		if wrapped && i == len(seg.cells)-1 {
			// The last cluster of a wrapped row belongs to this row; the
			// column after it starts the next screen row.
			return Point{Row: seg.row, Column: c.column}
		}
	}
	return Point{Row: seg.row, Column: column}
}

// DocumentToScreenPosition converts a document point into a screen row/column.
func (s *EditSession) DocumentToScreenPosition(p Point) (row, column int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p = s.doc.ClipPosition(p)
	segs := s.layout()
	for i, seg := range segs {
		if seg.row != p.Row {
			continue
		}
		lastOfRow := i+1 == len(segs) || segs[i+1].row != seg.row
		if !lastOfRow && p.Column >= segs[i+1].startColumn(0) {
			continue
		}
		x := 0
		for _, c := range seg.cells {
			if c.column >= p.Column {
				break
			}
			x += c.width
		}
		return i, x
	}
	return 0, 0
}

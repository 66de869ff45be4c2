package engine

import "fmt"

// Point is a document position. Both fields are 0-indexed.
// Column is measured in UTF-16 code units from the start of the row.
type Point struct {
	Row    int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Row < other.Row {
		return -1
	}
	if p.Row > other.Row {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// Range is a span between two points.
// Ranges built with RangeFromPoints keep the given order; callers that need
// Start <= End use Ordered.
type Range struct {
	Start Point
	End   Point
}

// NewRange creates a range from row/column pairs.
func NewRange(startRow, startColumn, endRow, endColumn int) Range {
	return Range{
		Start: Point{Row: startRow, Column: startColumn},
		End:   Point{Row: endRow, Column: endColumn},
	}
}

// RangeFromPoints creates a range between two points without reordering them.
func RangeFromPoints(start, end Point) Range {
	return Range{Start: start, End: end}
}

// IsEmpty returns true if the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Ordered returns the range with Start <= End.
func (r Range) Ordered() Range {
	if r.End.Before(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s]", r.Start, r.End)
}

package vscode

import (
	"fmt"

	"github.com/dshills/vscompat/internal/engine"
)

// Range is an ordered pair of positions. Start never comes after End.
type Range struct {
	Start Position
	End   Position
}

// NewRange orders a and b into a range.
func NewRange(a, b Position) Range {
	if a.IsAfter(b) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// NewRangeFromCoords builds a validated range from four coordinates.
func NewRangeFromCoords(startLine, startCharacter, endLine, endCharacter int) (Range, error) {
	start, err := NewPosition(startLine, startCharacter)
	if err != nil {
		return Range{}, err
	}
	end, err := NewPosition(endLine, endCharacter)
	if err != nil {
		return Range{}, err
	}
	return NewRange(start, end), nil
}

// String formats r as [start-end].
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s]", r.Start, r.End)
}

// IsEmpty reports whether r starts and ends at the same position.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsSingleLine reports whether r starts and ends on the same line.
func (r Range) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

// IsEqual reports whether r and other have the same bounds.
func (r Range) IsEqual(other Range) bool {
	return r.Start == other.Start && r.End == other.End
}

// Contains reports whether p lies inside r, bounds included.
func (r Range) Contains(p Position) bool {
	return r.Start.IsBeforeOrEqual(p) && r.End.IsAfterOrEqual(p)
}

// ContainsRange reports whether other lies inside r.
func (r Range) ContainsRange(other Range) bool {
	return r.Contains(other.Start) && r.Contains(other.End)
}

// Intersection returns the overlap of r and other. ok is false when they
// are disjoint.
func (r Range) Intersection(other Range) (Range, bool) {
	start := r.Start
	if other.Start.IsAfter(start) {
		start = other.Start
	}
	end := r.End
	if other.End.IsBefore(end) {
		end = other.End
	}
	if start.IsAfter(end) {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

// Union returns the smallest range covering r and other.
func (r Range) Union(other Range) Range {
	start := r.Start
	if other.Start.IsBefore(start) {
		start = other.Start
	}
	end := r.End
	if other.End.IsAfter(end) {
		end = other.End
	}
	return Range{Start: start, End: end}
}

// With returns a range with new bounds.
func (r Range) With(start, end Position) Range {
	return NewRange(start, end)
}

// ToNative converts r to an engine range.
func (r Range) ToNative() (engine.Range, error) {
	start, err := r.Start.ToNative()
	if err != nil {
		return engine.Range{}, err
	}
	end, err := r.End.ToNative()
	if err != nil {
		return engine.Range{}, err
	}
	return engine.RangeFromPoints(start, end).Ordered(), nil
}

// RangeFromNative converts an engine range.
func RangeFromNative(r engine.Range) Range {
	return NewRange(PositionFromNative(r.Start), PositionFromNative(r.End))
}

func (r Range) nativeRange() (engine.Range, error) {
	return r.ToNative()
}

package vscode

import (
	"fmt"

	"github.com/dshills/vscompat/internal/engine"
)

// Position is a zero-based line and UTF-16 character offset.
type Position struct {
	Line      int
	Character int
}

// NewPosition returns a validated position.
func NewPosition(line, character int) (Position, error) {
	p := Position{Line: line, Character: character}
	if err := p.Validate(); err != nil {
		return Position{}, err
	}
	return p, nil
}

// Validate reports ErrInvalidCoordinate for negative components.
func (p Position) Validate() error {
	if p.Line < 0 || p.Character < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCoordinate, p)
	}
	return nil
}

// String formats p as line:character.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

// Compare returns -1, 0 or 1.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Character < other.Character:
		return -1
	case p.Character > other.Character:
		return 1
	}
	return 0
}

// IsBefore reports whether p comes before other.
func (p Position) IsBefore(other Position) bool { return p.Compare(other) < 0 }

// IsBeforeOrEqual reports whether p comes before or at other.
func (p Position) IsBeforeOrEqual(other Position) bool { return p.Compare(other) <= 0 }

// IsAfter reports whether p comes after other.
func (p Position) IsAfter(other Position) bool { return p.Compare(other) > 0 }

// IsAfterOrEqual reports whether p comes after or at other.
func (p Position) IsAfterOrEqual(other Position) bool { return p.Compare(other) >= 0 }

// IsEqual reports whether p and other are the same position.
func (p Position) IsEqual(other Position) bool { return p == other }

// Translate returns p shifted by the given deltas.
func (p Position) Translate(lineDelta, characterDelta int) (Position, error) {
	return NewPosition(p.Line+lineDelta, p.Character+characterDelta)
}

// With returns p with its line and character replaced.
func (p Position) With(line, character int) (Position, error) {
	return NewPosition(line, character)
}

// ToNative converts p to an engine point.
func (p Position) ToNative() (engine.Point, error) {
	if err := p.Validate(); err != nil {
		return engine.Point{}, err
	}
	return engine.Point{Row: p.Line, Column: p.Character}, nil
}

// PositionFromNative converts an engine point.
func PositionFromNative(pt engine.Point) Position {
	return Position{Line: pt.Row, Character: pt.Column}
}

func (p Position) nativeRange() (engine.Range, error) {
	pt, err := p.ToNative()
	if err != nil {
		return engine.Range{}, err
	}
	return engine.RangeFromPoints(pt, pt), nil
}

package vscode

import "github.com/dshills/vscompat/internal/engine"

// Selection is a range that remembers which end the cursor is on.
type Selection struct {
	Range
	Anchor Position
	Active Position
}

// NewSelection creates a selection from anchor to active.
func NewSelection(anchor, active Position) Selection {
	return Selection{Range: NewRange(anchor, active), Anchor: anchor, Active: active}
}

// IsReversed reports whether the active end precedes the anchor.
func (s Selection) IsReversed() bool {
	return s.Active.IsBefore(s.Anchor)
}

// SelectionFromNative reads the current anchor and lead of an engine selection.
func SelectionFromNative(sel *engine.Selection) Selection {
	return NewSelection(PositionFromNative(sel.Anchor()), PositionFromNative(sel.Lead()))
}

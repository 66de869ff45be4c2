// Package vscode exposes a subset of the VS Code extension API on top of the
// engine. Positions, ranges, selections and end-of-line values are translated
// at the boundary; documents and editors are live views over engine sessions
// and never cache text or selection state.
//
// Columns are UTF-16 code units on both sides of the boundary, so a position
// maps to the engine point with the same line and character.
package vscode

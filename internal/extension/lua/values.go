package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/vscompat/internal/vscode"
)

// Positions, ranges and selections cross into Lua as plain tables shaped
// like their VS Code counterparts: {line, character}, {start, end} and
// {start, end, anchor, active, isReversed}.

func positionTable(L *lua.LState, p vscode.Position) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("line", lua.LNumber(p.Line))
	t.RawSetString("character", lua.LNumber(p.Character))
	return t
}

func rangeTable(L *lua.LState, r vscode.Range) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("start", positionTable(L, r.Start))
	t.RawSetString("end", positionTable(L, r.End))
	t.RawSetString("isEmpty", lua.LBool(r.IsEmpty()))
	return t
}

func selectionTable(L *lua.LState, s vscode.Selection) *lua.LTable {
	t := rangeTable(L, s.Range)
	t.RawSetString("anchor", positionTable(L, s.Anchor))
	t.RawSetString("active", positionTable(L, s.Active))
	t.RawSetString("isReversed", lua.LBool(s.IsReversed()))
	return t
}

func rangeList(L *lua.LState, rs []vscode.Range) *lua.LTable {
	t := L.NewTable()
	for i, r := range rs {
		t.RawSetInt(i+1, rangeTable(L, r))
	}
	return t
}

func selectionList(L *lua.LState, ss []vscode.Selection) *lua.LTable {
	t := L.NewTable()
	for i, s := range ss {
		t.RawSetInt(i+1, selectionTable(L, s))
	}
	return t
}

func toPosition(v lua.LValue) (vscode.Position, bool) {
	t, ok := v.(*lua.LTable)
	if !ok {
		return vscode.Position{}, false
	}
	line, ok1 := t.RawGetString("line").(lua.LNumber)
	char, ok2 := t.RawGetString("character").(lua.LNumber)
	if !ok1 || !ok2 {
		return vscode.Position{}, false
	}
	return vscode.Position{Line: int(line), Character: int(char)}, true
}

func toRange(v lua.LValue) (vscode.Range, bool) {
	t, ok := v.(*lua.LTable)
	if !ok {
		return vscode.Range{}, false
	}
	start, ok1 := toPosition(t.RawGetString("start"))
	end, ok2 := toPosition(t.RawGetString("end"))
	if !ok1 || !ok2 {
		return vscode.Range{}, false
	}
	return vscode.NewRange(start, end), true
}

func toSelection(v lua.LValue) (vscode.Selection, bool) {
	t, ok := v.(*lua.LTable)
	if !ok {
		return vscode.Selection{}, false
	}
	anchor, ok1 := toPosition(t.RawGetString("anchor"))
	active, ok2 := toPosition(t.RawGetString("active"))
	if ok1 && ok2 {
		return vscode.NewSelection(anchor, active), true
	}
	if r, ok := toRange(v); ok {
		return vscode.NewSelection(r.Start, r.End), true
	}
	return vscode.Selection{}, false
}

// toLocation reads a range table, or a position table as an empty range.
func toLocation(v lua.LValue) (vscode.Location, bool) {
	if r, ok := toRange(v); ok {
		return r, true
	}
	if p, ok := toPosition(v); ok {
		return p, true
	}
	return nil, false
}

func checkPosition(L *lua.LState, n int) vscode.Position {
	p, ok := toPosition(L.Get(n))
	if !ok {
		L.ArgError(n, "position expected")
	}
	return p
}

func checkRange(L *lua.LState, n int) vscode.Range {
	r, ok := toRange(L.Get(n))
	if !ok {
		L.ArgError(n, "range expected")
	}
	return r
}

func checkLocation(L *lua.LState, n int) vscode.Location {
	loc, ok := toLocation(L.Get(n))
	if !ok {
		L.ArgError(n, "position or range expected")
	}
	return loc
}

// newPosition implements vscode.Position(line, character).
func newPosition(L *lua.LState) int {
	p, err := vscode.NewPosition(L.CheckInt(1), L.CheckInt(2))
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(positionTable(L, p))
	return 1
}

// newRange implements vscode.Range(start, end) and
// vscode.Range(startLine, startCharacter, endLine, endCharacter).
func newRange(L *lua.LState) int {
	if L.Get(1).Type() == lua.LTNumber {
		r, err := vscode.NewRangeFromCoords(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4))
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(rangeTable(L, r))
		return 1
	}
	L.Push(rangeTable(L, vscode.NewRange(checkPosition(L, 1), checkPosition(L, 2))))
	return 1
}

// newSelection implements vscode.Selection(anchor, active) and the
// four-number form.
func newSelection(L *lua.LState) int {
	if L.Get(1).Type() == lua.LTNumber {
		anchor, err := vscode.NewPosition(L.CheckInt(1), L.CheckInt(2))
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		active, err := vscode.NewPosition(L.CheckInt(3), L.CheckInt(4))
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(selectionTable(L, vscode.NewSelection(anchor, active)))
		return 1
	}
	L.Push(selectionTable(L, vscode.NewSelection(checkPosition(L, 1), checkPosition(L, 2))))
	return 1
}

// argBase returns the index of the first real argument, skipping self when
// a function stored on self was called with colon syntax.
func argBase(L *lua.LState, self lua.LValue) int {
	if L.GetTop() > 0 && L.Get(1) == self {
		return 2
	}
	return 1
}

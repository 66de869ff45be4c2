package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/vscompat/internal/vscode"
)

// Userdata type names.
const (
	typeDocument = "vscode.TextDocument"
	typeEditor   = "vscode.TextEditor"
	typeEdit     = "vscode.TextEditorEdit"
)

// Documents, editors and edit builders are userdata whose fields are
// resolved on every access, so Lua sees the same live state as Go.
// Methods use colon syntax: doc:getText(), editor:edit(fn).

func (m *Module) registerTypes(L *lua.LState) {
	doc := L.NewTypeMetatable(typeDocument)
	L.SetField(doc, "__index", L.NewFunction(m.documentIndex))
	L.SetField(doc, "__eq", L.NewFunction(equalFunc(func(a, b any) bool {
		return a.(*vscode.TextDocument).Equal(b.(*vscode.TextDocument))
	})))

	ed := L.NewTypeMetatable(typeEditor)
	L.SetField(ed, "__index", L.NewFunction(m.editorIndex))
	L.SetField(ed, "__newindex", L.NewFunction(m.editorNewIndex))
	L.SetField(ed, "__eq", L.NewFunction(equalFunc(func(a, b any) bool {
		return a.(*vscode.TextEditor).Equal(b.(*vscode.TextEditor))
	})))

	edit := L.NewTypeMetatable(typeEdit)
	L.SetField(edit, "__index", L.NewFunction(m.editIndex))
}

func equalFunc(eq func(a, b any) bool) lua.LGFunction {
	return func(L *lua.LState) int {
		a, b := L.CheckUserData(1), L.CheckUserData(2)
		L.Push(lua.LBool(eq(a.Value, b.Value)))
		return 1
	}
}

func userdata(L *lua.LState, v any, typ string) lua.LValue {
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(typ))
	return ud
}

func (m *Module) documentValue(L *lua.LState, doc *vscode.TextDocument) lua.LValue {
	if doc == nil {
		return lua.LNil
	}
	return userdata(L, doc, typeDocument)
}

func (m *Module) editorValue(L *lua.LState, ed *vscode.TextEditor) lua.LValue {
	if ed == nil {
		return lua.LNil
	}
	return userdata(L, ed, typeEditor)
}

func (m *Module) editValue(L *lua.LState, edit *vscode.TextEditorEdit) lua.LValue {
	return userdata(L, edit, typeEdit)
}

func checkDocument(L *lua.LState, n int) *vscode.TextDocument {
	if doc, ok := L.CheckUserData(n).Value.(*vscode.TextDocument); ok {
		return doc
	}
	L.ArgError(n, "TextDocument expected")
	return nil
}

func checkEditor(L *lua.LState, n int) *vscode.TextEditor {
	if ed, ok := L.CheckUserData(n).Value.(*vscode.TextEditor); ok {
		return ed
	}
	L.ArgError(n, "TextEditor expected")
	return nil
}

func checkEdit(L *lua.LState, n int) *vscode.TextEditorEdit {
	if e, ok := L.CheckUserData(n).Value.(*vscode.TextEditorEdit); ok {
		return e
	}
	L.ArgError(n, "TextEditorEdit expected")
	return nil
}

func optionsTable(L *lua.LState, o vscode.TextEditorOptions) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("tabSize", lua.LNumber(o.TabSize))
	return t
}

func lineTable(L *lua.LState, tl vscode.TextLine) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("lineNumber", lua.LNumber(tl.LineNumber))
	t.RawSetString("text", lua.LString(tl.Text))
	t.RawSetString("range", rangeTable(L, tl.Range))
	t.RawSetString("rangeIncludingLineBreak", rangeTable(L, tl.RangeIncludingLineBreak))
	t.RawSetString("firstNonWhitespaceCharacterIndex", lua.LNumber(tl.FirstNonWhitespaceCharacterIndex))
	t.RawSetString("isEmptyOrWhitespace", lua.LBool(tl.IsEmptyOrWhitespace))
	return t
}

func (m *Module) documentIndex(L *lua.LState) int {
	doc := checkDocument(L, 1)
	switch key := L.CheckString(2); key {
	case "uri":
		L.Push(lua.LString(doc.URI()))
	case "fileName":
		L.Push(lua.LString(doc.FileName()))
	case "languageId":
		L.Push(lua.LString(doc.LanguageID()))
	case "version":
		L.Push(lua.LNumber(doc.Version()))
	case "lineCount":
		L.Push(lua.LNumber(doc.LineCount()))
	case "isDirty":
		L.Push(lua.LBool(doc.IsDirty()))
	case "isUntitled":
		L.Push(lua.LBool(doc.IsUntitled()))
	case "isClosed":
		L.Push(lua.LBool(doc.IsClosed()))
	case "eol":
		eol, err := doc.EOL()
		if err != nil {
			return raise(L, err)
		}
		L.Push(lua.LNumber(eol))
	case "getText":
		L.Push(L.NewFunction(func(L *lua.LState) int {
			doc := checkDocument(L, 1)
			var r *vscode.Range
			if L.GetTop() >= 2 && L.Get(2) != lua.LNil {
				rr := checkRange(L, 2)
				r = &rr
			}
			text, err := doc.GetText(r)
			if err != nil {
				return raise(L, err)
			}
			L.Push(lua.LString(text))
			return 1
		}))
	case "lineAt":
		L.Push(L.NewFunction(func(L *lua.LState) int {
			doc := checkDocument(L, 1)
			var line int
			if p, ok := toPosition(L.Get(2)); ok {
				line = p.Line
			} else {
				line = L.CheckInt(2)
			}
			tl, err := doc.LineAt(line)
			if err != nil {
				return raise(L, err)
			}
			L.Push(lineTable(L, tl))
			return 1
		}))
	case "offsetAt":
		L.Push(L.NewFunction(func(L *lua.LState) int {
			off, err := checkDocument(L, 1).OffsetAt(checkPosition(L, 2))
			if err != nil {
				return raise(L, err)
			}
			L.Push(lua.LNumber(off))
			return 1
		}))
	case "positionAt":
		L.Push(L.NewFunction(func(L *lua.LState) int {
			p, err := checkDocument(L, 1).PositionAt(L.CheckInt(2))
			if err != nil {
				return raise(L, err)
			}
			L.Push(positionTable(L, p))
			return 1
		}))
	case "validatePosition":
		L.Push(L.NewFunction(func(L *lua.LState) int {
			L.Push(positionTable(L, checkDocument(L, 1).ValidatePosition(checkPosition(L, 2))))
			return 1
		}))
	case "validateRange":
		L.Push(L.NewFunction(func(L *lua.LState) int {
			L.Push(rangeTable(L, checkDocument(L, 1).ValidateRange(checkRange(L, 2))))
			return 1
		}))
	case "getWordRangeAtPosition":
		L.Push(L.NewFunction(func(L *lua.LState) int {
			r, ok := checkDocument(L, 1).GetWordRangeAtPosition(checkPosition(L, 2))
			if !ok {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(rangeTable(L, r))
			return 1
		}))
	case "save":
		L.Push(L.NewFunction(func(L *lua.LState) int {
			if err := m.api.Workspace.SaveTextDocument(checkDocument(L, 1)); err != nil {
				return raise(L, err)
			}
			L.Push(lua.LTrue)
			return 1
		}))
	default:
		L.Push(lua.LNil)
	}
	return 1
}

func (m *Module) editorIndex(L *lua.LState) int {
	ed := checkEditor(L, 1)
	switch key := L.CheckString(2); key {
	case "document":
		L.Push(m.documentValue(L, ed.Document()))
	case "selection":
		L.Push(selectionTable(L, ed.Selection()))
	case "selections":
		L.Push(selectionList(L, ed.Selections()))
	case "visibleRanges":
		L.Push(rangeList(L, ed.VisibleRanges()))
	case "options":
		L.Push(optionsTable(L, ed.Options()))
	case "viewColumn":
		L.Push(lua.LNumber(ed.ViewColumn()))
	case "edit":
		L.Push(L.NewFunction(func(L *lua.LState) int {
			ed := checkEditor(L, 1)
			fn := L.CheckFunction(2)
			var callErr error
			ok, err := ed.Edit(func(edit *vscode.TextEditorEdit) {
				_, callErr = m.invoke(fn, m.editValue(L, edit))
			})
			// An edit op that fails raises its own error; that failure is
			// reported as false. Any other error from the callback propagates.
			if callErr != nil && (err == nil || !strings.Contains(callErr.Error(), err.Error())) {
				return raise(L, callErr)
			}
			if err != nil {
				m.log.Warn("edit failed: %v", err)
			}
			L.Push(lua.LBool(ok))
			return 1
		}))
	case "insertSnippet", "setDecorations", "revealRange", "show", "hide":
		member := "TextEditor." + key
		L.Push(L.NewFunction(func(L *lua.LState) int {
			return raise(L, &vscode.UnsupportedError{Member: member})
		}))
	default:
		L.Push(lua.LNil)
	}
	return 1
}

func (m *Module) editorNewIndex(L *lua.LState) int {
	ed := checkEditor(L, 1)
	switch key := L.CheckString(2); key {
	case "selection":
		sel, ok := toSelection(L.Get(3))
		if !ok {
			L.ArgError(3, "selection expected")
			return 0
		}
		if err := ed.SetSelection(sel); err != nil {
			return raise(L, err)
		}
	case "selections":
		t := L.CheckTable(3)
		var sels []vscode.Selection
		for i := 1; i <= t.Len(); i++ {
			sel, ok := toSelection(t.RawGetInt(i))
			if !ok {
				L.ArgError(3, "list of selections expected")
				return 0
			}
			sels = append(sels, sel)
		}
		if err := ed.SetSelections(sels); err != nil {
			return raise(L, err)
		}
	case "options":
		t := L.CheckTable(3)
		if n, ok := t.RawGetString("tabSize").(lua.LNumber); ok {
			ed.SetOptions(vscode.TextEditorOptions{TabSize: int(n)})
		}
	default:
		L.RaiseError("TextEditor.%s is read-only", key)
	}
	return 0
}

func (m *Module) editIndex(L *lua.LState) int {
	checkEdit(L, 1)
	switch L.CheckString(2) {
	case "insert":
		L.Push(L.NewFunction(func(L *lua.LState) int {
			if err := checkEdit(L, 1).Insert(checkPosition(L, 2), L.CheckString(3)); err != nil {
				return raise(L, err)
			}
			return 0
		}))
	case "replace":
		L.Push(L.NewFunction(func(L *lua.LState) int {
			if err := checkEdit(L, 1).Replace(checkLocation(L, 2), L.CheckString(3)); err != nil {
				return raise(L, err)
			}
			return 0
		}))
	case "delete":
		L.Push(L.NewFunction(func(L *lua.LState) int {
			if err := checkEdit(L, 1).Delete(checkLocation(L, 2)); err != nil {
				return raise(L, err)
			}
			return 0
		}))
	case "setEndOfLine":
		L.Push(L.NewFunction(func(L *lua.LState) int {
			if err := checkEdit(L, 1).SetEndOfLine(vscode.EndOfLine(L.CheckInt(2))); err != nil {
				return raise(L, err)
			}
			return 0
		}))
	default:
		L.Push(lua.LNil)
	}
	return 1
}

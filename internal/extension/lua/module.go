package lua

import (
	"context"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/vscompat/internal/logging"
	"github.com/dshills/vscompat/internal/vscode"
)

// ModuleName is the name extensions pass to require.
const ModuleName = "vscode"

// Module exposes an API to one State as the vscode module.
type Module struct {
	api   *vscode.API
	state *State
	log   *logging.Logger

	mu    sync.Mutex
	owned []vscode.Disposable
}

// NewModule creates a module bound to state.
func NewModule(api *vscode.API, state *State, log *logging.Logger) *Module {
	return &Module{api: api, state: state, log: log}
}

// Install makes require("vscode") return the module.
func (m *Module) Install() {
	m.state.Preload(ModuleName, m.loader)
}

// DisposeAll releases every registration made through the module.
func (m *Module) DisposeAll() {
	m.mu.Lock()
	owned := m.owned
	m.owned = nil
	m.mu.Unlock()

	for _, d := range owned {
		d.Dispose()
	}
}

func (m *Module) track(d vscode.Disposable) vscode.Disposable {
	m.mu.Lock()
	m.owned = append(m.owned, d)
	m.mu.Unlock()
	return d
}

func (m *Module) loader(L *lua.LState) int {
	m.registerTypes(L)

	mod := L.NewTable()
	L.SetField(mod, "commands", m.commandsTable(L))
	L.SetField(mod, "window", m.windowTable(L))
	L.SetField(mod, "workspace", m.workspaceTable(L))
	L.SetField(mod, "Position", L.NewFunction(newPosition))
	L.SetField(mod, "Range", L.NewFunction(newRange))
	L.SetField(mod, "Selection", L.NewFunction(newSelection))

	eol := L.NewTable()
	eol.RawSetString("LF", lua.LNumber(vscode.LF))
	eol.RawSetString("CRLF", lua.LNumber(vscode.CRLF))
	L.SetField(mod, "EndOfLine", eol)

	reason := L.NewTable()
	reason.RawSetString("Manual", lua.LNumber(vscode.SaveReasonManual))
	reason.RawSetString("AfterDelay", lua.LNumber(vscode.SaveReasonAfterDelay))
	reason.RawSetString("FocusOut", lua.LNumber(vscode.SaveReasonFocusOut))
	L.SetField(mod, "TextDocumentSaveReason", reason)

	disposable := L.NewTable()
	L.SetField(disposable, "from", L.NewFunction(m.disposableFrom))
	L.SetField(mod, "Disposable", disposable)

	L.Push(mod)
	return 1
}

func raise(L *lua.LState, err error) int {
	L.RaiseError("%s", err.Error())
	return 0
}

// invoke calls a Lua function and returns its first result.
func (m *Module) invoke(fn *lua.LFunction, args ...lua.LValue) (lua.LValue, error) {
	results, err := m.state.Call(fn, args...)
	if err != nil {
		return lua.LNil, err
	}
	if len(results) == 0 {
		return lua.LNil, nil
	}
	return results[0], nil
}

// notify calls a Lua event listener. Listener errors are logged so one
// failing extension does not break the engine's emit loop.
func (m *Module) notify(fn *lua.LFunction, args ...lua.LValue) {
	if _, err := m.invoke(fn, args...); err != nil {
		m.log.Error("listener failed: %v", err)
	}
}

// disposableTable wraps d as a Lua table with a dispose method.
func (m *Module) disposableTable(L *lua.LState, d vscode.Disposable) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("dispose", L.NewFunction(func(L *lua.LState) int {
		d.Dispose()
		return 0
	}))
	return t
}

// disposableFrom implements vscode.Disposable.from(...).
func (m *Module) disposableFrom(L *lua.LState) int {
	var fns []lua.LValue
	var selves []lua.LValue
	for i := 1; i <= L.GetTop(); i++ {
		t, ok := L.Get(i).(*lua.LTable)
		if !ok {
			continue
		}
		if fn := t.RawGetString("dispose"); fn.Type() == lua.LTFunction {
			fns = append(fns, fn)
			selves = append(selves, t)
		}
	}
	d := vscode.ToDisposable(func() {
		for i, fn := range fns {
			if _, err := m.state.Call(fn, selves[i]); err != nil {
				m.log.Error("dispose failed: %v", err)
			}
		}
	})
	L.Push(m.disposableTable(L, d))
	return 1
}

// toLua converts a command result or argument, keeping API objects as
// their Lua views.
func (m *Module) toLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case *vscode.TextDocument:
		return m.documentValue(L, val)
	case *vscode.TextEditor:
		return m.editorValue(L, val)
	case vscode.Position:
		return positionTable(L, val)
	case vscode.Selection:
		return selectionTable(L, val)
	case vscode.Range:
		return rangeTable(L, val)
	}
	return ToLuaValue(L, v)
}

func (m *Module) commandsTable(L *lua.LState) *lua.LTable {
	t := L.NewTable()

	L.SetField(t, "registerCommand", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		fn := L.CheckFunction(2)
		d, err := m.api.Commands.RegisterCommand(id, func(args ...any) (any, error) {
			lv := make([]lua.LValue, len(args))
			for i, a := range args {
				lv[i] = m.toLua(m.state.L, a)
			}
			res, err := m.invoke(fn, lv...)
			if err != nil {
				return nil, err
			}
			return ToGoValue(res), nil
		})
		if err != nil {
			return raise(L, err)
		}
		L.Push(m.disposableTable(L, m.track(d)))
		return 1
	}))

	L.SetField(t, "registerTextEditorCommand", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		fn := L.CheckFunction(2)
		d, err := m.api.Commands.RegisterTextEditorCommand(id, func(ed *vscode.TextEditor, edit *vscode.TextEditorEdit, args ...any) (any, error) {
			SL := m.state.L
			lv := []lua.LValue{m.editorValue(SL, ed), m.editValue(SL, edit)}
			for _, a := range args {
				lv = append(lv, m.toLua(SL, a))
			}
			res, err := m.invoke(fn, lv...)
			if err != nil {
				return nil, err
			}
			return ToGoValue(res), nil
		})
		if err != nil {
			return raise(L, err)
		}
		L.Push(m.disposableTable(L, m.track(d)))
		return 1
	}))

	L.SetField(t, "executeCommand", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		args := make([]any, 0, L.GetTop()-1)
		for i := 2; i <= L.GetTop(); i++ {
			args = append(args, ToGoValue(L.Get(i)))
		}
		res, err := m.api.Commands.ExecuteCommand(context.Background(), id, args...)
		if err != nil {
			return raise(L, err)
		}
		L.Push(m.toLua(L, res))
		return 1
	}))

	L.SetField(t, "getCommands", L.NewFunction(func(L *lua.LState) int {
		L.Push(ToLuaValue(L, m.api.Commands.GetCommands(L.OptBool(1, false))))
		return 1
	}))

	return t
}

// listenerFunc builds a Lua function that subscribes its argument via
// subscribe and returns a disposable.
func (m *Module) listenerFunc(L *lua.LState, subscribe func(fn *lua.LFunction) vscode.Disposable) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		fn := L.CheckFunction(1)
		L.Push(m.disposableTable(L, m.track(subscribe(fn))))
		return 1
	})
}

func (m *Module) windowTable(L *lua.LState) *lua.LTable {
	w := m.api.Window
	t := L.NewTable()

	message := func(show func(string, ...string) string) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			msg := L.CheckString(1)
			var items []string
			for i := 2; i <= L.GetTop(); i++ {
				items = append(items, L.CheckString(i))
			}
			show(msg, items...)
			return 0
		})
	}
	L.SetField(t, "showInformationMessage", message(w.ShowInformationMessage))
	L.SetField(t, "showWarningMessage", message(w.ShowWarningMessage))
	L.SetField(t, "showErrorMessage", message(w.ShowErrorMessage))

	L.SetField(t, "onDidChangeActiveTextEditor", m.listenerFunc(L, func(fn *lua.LFunction) vscode.Disposable {
		return w.OnDidChangeActiveTextEditor(func(ed *vscode.TextEditor) {
			m.notify(fn, m.editorValue(m.state.L, ed))
		})
	}))
	L.SetField(t, "onDidChangeTextEditorSelection", m.listenerFunc(L, func(fn *lua.LFunction) vscode.Disposable {
		return w.OnDidChangeTextEditorSelection(func(e vscode.TextEditorSelectionChangeEvent) {
			SL := m.state.L
			ev := SL.NewTable()
			ev.RawSetString("textEditor", m.editorValue(SL, e.TextEditor))
			ev.RawSetString("selections", selectionList(SL, e.Selections))
			if e.Kind != 0 {
				ev.RawSetString("kind", lua.LNumber(e.Kind))
			}
			m.notify(fn, ev)
		})
	}))
	L.SetField(t, "onDidChangeTextEditorOptions", m.listenerFunc(L, func(fn *lua.LFunction) vscode.Disposable {
		return w.OnDidChangeTextEditorOptions(func(ed *vscode.TextEditor, o vscode.TextEditorOptions) {
			SL := m.state.L
			ev := SL.NewTable()
			ev.RawSetString("textEditor", m.editorValue(SL, ed))
			ev.RawSetString("options", optionsTable(SL, o))
			m.notify(fn, ev)
		})
	}))

	for _, name := range []string{"showQuickPick", "showInputBox", "createOutputChannel"} {
		member := "window." + name
		L.SetField(t, name, L.NewFunction(func(L *lua.LState) int {
			return raise(L, &vscode.UnsupportedError{Member: member})
		}))
	}

	live := L.NewTable()
	L.SetField(live, "__index", L.NewFunction(func(L *lua.LState) int {
		switch L.CheckString(2) {
		case "activeTextEditor":
			L.Push(m.editorValue(L, w.ActiveTextEditor()))
		case "visibleTextEditors":
			eds := L.NewTable()
			for i, ed := range w.VisibleTextEditors() {
				eds.RawSetInt(i+1, m.editorValue(L, ed))
			}
			L.Push(eds)
		default:
			L.Push(lua.LNil)
		}
		return 1
	}))
	L.SetMetatable(t, live)
	return t
}

func (m *Module) workspaceTable(L *lua.LState) *lua.LTable {
	ws := m.api.Workspace
	t := L.NewTable()

	L.SetField(t, "onDidChangeTextDocument", m.listenerFunc(L, func(fn *lua.LFunction) vscode.Disposable {
		return ws.OnDidChangeTextDocument(func(e vscode.TextDocumentChangeEvent) {
			m.notify(fn, m.changeEventTable(m.state.L, e))
		})
	}))
	docListener := func(sub func(func(*vscode.TextDocument), ...vscode.Disposable) vscode.Disposable) *lua.LFunction {
		return m.listenerFunc(L, func(fn *lua.LFunction) vscode.Disposable {
			return sub(func(doc *vscode.TextDocument) {
				m.notify(fn, m.documentValue(m.state.L, doc))
			})
		})
	}
	L.SetField(t, "onDidOpenTextDocument", docListener(ws.OnDidOpenTextDocument))
	L.SetField(t, "onDidCloseTextDocument", docListener(ws.OnDidCloseTextDocument))
	L.SetField(t, "onDidSaveTextDocument", docListener(ws.OnDidSaveTextDocument))

	L.SetField(t, "onWillSaveTextDocument", m.listenerFunc(L, func(fn *lua.LFunction) vscode.Disposable {
		return ws.OnWillSaveTextDocument(func(e *vscode.TextDocumentWillSaveEvent) {
			SL := m.state.L
			ev := SL.NewTable()
			ev.RawSetString("document", m.documentValue(SL, e.Document))
			ev.RawSetString("reason", lua.LNumber(e.Reason))
			ev.RawSetString("waitUntil", SL.NewFunction(func(L *lua.LState) int {
				return raise(L, e.WaitUntil(nil))
			}))
			m.notify(fn, ev)
		})
	}))

	L.SetField(t, "onDidChangeConfiguration", m.listenerFunc(L, func(fn *lua.LFunction) vscode.Disposable {
		return ws.OnDidChangeConfiguration(func(e vscode.ConfigurationChangeEvent) {
			SL := m.state.L
			ev := SL.NewTable()
			ev.RawSetString("affectsConfiguration", SL.NewFunction(func(L *lua.LState) int {
				section := L.CheckString(argBase(L, ev))
				L.Push(lua.LBool(e.AffectsConfiguration(section)))
				return 1
			}))
			m.notify(fn, ev)
		})
	}))

	L.SetField(t, "getConfiguration", L.NewFunction(func(L *lua.LState) int {
		L.Push(m.configurationTable(L, ws.GetConfiguration(L.OptString(1, ""))))
		return 1
	}))

	L.SetField(t, "openTextDocument", L.NewFunction(func(L *lua.LState) int {
		doc, err := ws.OpenTextDocument(L.CheckString(1))
		if err != nil {
			return raise(L, err)
		}
		L.Push(m.documentValue(L, doc))
		return 1
	}))

	for _, name := range []string{"applyEdit", "findFiles"} {
		member := "workspace." + name
		L.SetField(t, name, L.NewFunction(func(L *lua.LState) int {
			return raise(L, &vscode.UnsupportedError{Member: member})
		}))
	}

	live := L.NewTable()
	L.SetField(live, "__index", L.NewFunction(func(L *lua.LState) int {
		if L.CheckString(2) != "textDocuments" {
			L.Push(lua.LNil)
			return 1
		}
		docs := L.NewTable()
		for i, doc := range ws.TextDocuments() {
			docs.RawSetInt(i+1, m.documentValue(L, doc))
		}
		L.Push(docs)
		return 1
	}))
	L.SetMetatable(t, live)
	return t
}

func (m *Module) changeEventTable(L *lua.LState, e vscode.TextDocumentChangeEvent) *lua.LTable {
	ev := L.NewTable()
	ev.RawSetString("document", m.documentValue(L, e.Document))
	changes := L.NewTable()
	for i, c := range e.ContentChanges {
		ct := L.NewTable()
		ct.RawSetString("range", rangeTable(L, c.Range))
		ct.RawSetString("rangeOffset", lua.LNumber(c.RangeOffset))
		ct.RawSetString("rangeLength", lua.LNumber(c.RangeLength))
		ct.RawSetString("text", lua.LString(c.Text))
		changes.RawSetInt(i+1, ct)
	}
	ev.RawSetString("contentChanges", changes)
	return ev
}

func (m *Module) configurationTable(L *lua.LState, cfg *vscode.Configuration) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "get", L.NewFunction(func(L *lua.LState) int {
		base := argBase(L, t)
		key := L.CheckString(base)
		if v, ok := cfg.Get(key); ok {
			L.Push(ToLuaValue(L, v))
		} else {
			L.Push(L.Get(base + 1))
		}
		return 1
	}))
	L.SetField(t, "has", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(cfg.Has(L.CheckString(argBase(L, t)))))
		return 1
	}))
	L.SetField(t, "update", L.NewFunction(func(L *lua.LState) int {
		base := argBase(L, t)
		if err := cfg.Update(L.CheckString(base), ToGoValue(L.Get(base+1))); err != nil {
			return raise(L, err)
		}
		return 0
	}))
	return t
}

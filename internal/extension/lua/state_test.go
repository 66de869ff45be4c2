package lua

import (
	"errors"
	"strings"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"
)

func TestStateRunsChunksAndReturnsValues(t *testing.T) {
	s := NewState()
	defer s.Close()

	results, err := s.DoString(`return 1 + 2, "x"`)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[0] != lua.LNumber(3) || results[1] != lua.LString("x") {
		t.Errorf("unexpected results %v", results)
	}
}

func TestStateSandbox(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "io", "os", "debug"} {
		if v := s.GetGlobal(name); v != lua.LNil {
			t.Errorf("expected %s to be unavailable, got %s", name, v.Type())
		}
	}
	if _, err := s.DoString(`return require("os")`); err == nil {
		t.Error("expected require of os to fail")
	}
	if _, err := s.DoString(`return require("string").upper("a")`); err != nil {
		t.Errorf("expected string module to load, got %v", err)
	}
}

func TestStatePreload(t *testing.T) {
	s := NewState()
	defer s.Close()

	s.Preload("greeter", func(L *lua.LState) int {
		mod := L.NewTable()
		mod.RawSetString("name", lua.LString("greeter"))
		L.Push(mod)
		return 1
	})
	results, err := s.DoString(`return require("greeter").name`)
	if err != nil {
		t.Fatal(err)
	}
	if results[0] != lua.LString("greeter") {
		t.Errorf("expected greeter, got %v", results[0])
	}
}

func TestStateNestedCalls(t *testing.T) {
	s := NewState()
	defer s.Close()

	s.SetGlobal("callback", s.L.NewFunction(func(L *lua.LState) int {
		inner := s.GetGlobal("inner")
		res, err := s.Call(inner, lua.LNumber(20))
		if err != nil {
			L.RaiseError("%s", err.Error())
		}
		L.Push(res[0])
		return 1
	}))
	if _, err := s.DoString(`function inner(n) return n + 1 end`); err != nil {
		t.Fatal(err)
	}
	results, err := s.DoString(`return callback() * 2`)
	if err != nil {
		t.Fatal(err)
	}
	if results[0] != lua.LNumber(42) {
		t.Errorf("expected 42, got %v", results[0])
	}
}

func TestStateCallErrors(t *testing.T) {
	s := NewState()
	if _, err := s.Call(lua.LString("nope")); !errors.Is(err, ErrNotFunction) {
		t.Errorf("expected ErrNotFunction, got %v", err)
	}
	if _, err := s.DoString(`error("boom")`); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected boom, got %v", err)
	}

	s.Close()
	s.Close()
	if _, err := s.DoString(`return 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("expected ErrStateClosed, got %v", err)
	}
}

func TestStateCallTimeout(t *testing.T) {
	s := NewState(WithCallTimeout(50 * time.Millisecond))
	defer s.Close()

	done := make(chan error, 1)
	go func() {
		_, err := s.DoString(`while true do end`)
		done <- err
	}()
	select {
	case err := <-done:
		if err == nil {
			t.Error("expected timeout error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected the call to be interrupted")
	}
}

package lua

import (
	"context"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultCallTimeout bounds a single call from Go into Lua.
const DefaultCallTimeout = 5 * time.Second

// State wraps a gopher-lua state opened with the safe standard libraries only.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	closed  bool
	timeout time.Duration
	depth   int
	allowed map[string]bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithCallTimeout sets the timeout for calls made from Go. Zero disables it.
func WithCallTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// NewState creates a sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	s := &State{
		timeout: DefaultCallTimeout,
		allowed: map[string]bool{"string": true, "table": true, "math": true},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	installSandbox(s.L, s.isAllowed)
	return s
}

// openSafeLibraries opens the libraries that cannot reach the host system.
// io, os and debug stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenPackage(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// DoFile runs a Lua file and returns the values its chunk returned.
func (s *State) DoFile(path string) ([]lua.LValue, error) {
	fn, err := s.load(func() (*lua.LFunction, error) { return s.L.LoadFile(path) })
	if err != nil {
		return nil, err
	}
	return s.Call(fn)
}

// DoString runs a chunk of Lua source and returns its values.
func (s *State) DoString(code string) ([]lua.LValue, error) {
	fn, err := s.load(func() (*lua.LFunction, error) { return s.L.LoadString(code) })
	if err != nil {
		return nil, err
	}
	return s.Call(fn)
}

func (s *State) load(fn func() (*lua.LFunction, error)) (*lua.LFunction, error) {
	if s.IsClosed() {
		return nil, ErrStateClosed
	}
	return fn()
}

// Call calls fn with args. Calls may nest: Go code invoked from Lua can
// call back into the same state.
func (s *State) Call(fn lua.LValue, args ...lua.LValue) (results []lua.LValue, err error) {
	if s.IsClosed() {
		return nil, ErrStateClosed
	}
	if fn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("%w: got %s", ErrNotFunction, fn.Type())
	}

	if s.enter() && s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		s.L.SetContext(ctx)
		defer func() {
			s.L.RemoveContext()
			cancel()
		}()
	}
	defer s.leave()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	top := s.L.GetTop()
	s.L.Push(fn)
	for _, a := range args {
		s.L.Push(a)
	}
	if err := s.L.PCall(len(args), lua.MultRet, nil); err != nil {
		s.L.SetTop(top)
		return nil, err
	}
	n := s.L.GetTop() - top
	results = make([]lua.LValue, n)
	for i := 0; i < n; i++ {
		results[i] = s.L.Get(top + i + 1)
	}
	s.L.SetTop(top)
	return results, nil
}

// enter records a call and reports whether it is the outermost one.
func (s *State) enter() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.depth++
	return s.depth == 1
}

func (s *State) leave() {
	s.mu.Lock()
	s.depth--
	s.mu.Unlock()
}

// GetGlobal returns a global variable.
func (s *State) GetGlobal(name string) lua.LValue {
	if s.IsClosed() {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, v lua.LValue) {
	if s.IsClosed() {
		return
	}
	s.L.SetGlobal(name, v)
}

// Preload makes loader available to require under name.
func (s *State) Preload(name string, loader lua.LGFunction) {
	s.mu.Lock()
	s.allowed[name] = true
	s.mu.Unlock()
	s.L.PreloadModule(name, loader)
}

func (s *State) isAllowed(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allowed[name]
}

// IsClosed reports whether Close was called.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the Lua state. It is safe to call more than once.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}

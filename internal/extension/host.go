package extension

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	elua "github.com/dshills/vscompat/internal/extension/lua"
	"github.com/dshills/vscompat/internal/logging"
	"github.com/dshills/vscompat/internal/vscode"
)

// Host runs one extension in its own Lua state.
type Host struct {
	mu sync.Mutex

	manifest *Manifest
	api      *vscode.API
	log      *logging.Logger
	timeout  time.Duration

	state   State
	err     error
	lstate  *elua.State
	module  *elua.Module
	exports *lua.LTable
	context *lua.LTable
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostLogger sets the logger.
func WithHostLogger(l *logging.Logger) HostOption {
	return func(h *Host) {
		h.log = l
	}
}

// WithHostCallTimeout bounds each call into the extension.
func WithHostCallTimeout(d time.Duration) HostOption {
	return func(h *Host) {
		h.timeout = d
	}
}

// NewHost creates a host for the extension described by manifest.
func NewHost(manifest *Manifest, api *vscode.API, opts ...HostOption) (*Host, error) {
	if manifest == nil {
		return nil, ErrNilManifest
	}
	h := &Host{
		manifest: manifest,
		api:      api,
		log:      logging.New("extension").WithField("ext", manifest.ID()),
		timeout:  elua.DefaultCallTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Manifest returns the extension manifest.
func (h *Host) Manifest() *Manifest {
	return h.manifest
}

// State returns the lifecycle state.
func (h *Host) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Err returns the error that put the extension into StateError.
func (h *Host) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *Host) fail(err error) error {
	h.state = StateError
	h.err = err
	h.log.Error("%v", err)
	return err
}

// Load creates the Lua state and runs the main file.
func (h *Host) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != StateUnloaded {
		return ErrAlreadyLoaded
	}

	h.lstate = elua.NewState(elua.WithCallTimeout(h.timeout))
	h.module = elua.NewModule(h.api, h.lstate, h.log.WithComponent("lua"))
	h.module.Install()

	results, err := h.lstate.DoFile(h.manifest.MainPath())
	if err != nil {
		h.module.DisposeAll()
		h.lstate.Close()
		h.lstate = nil
		return h.fail(fmt.Errorf("loading %s: %w", h.manifest.Main, err))
	}
	if len(results) > 0 {
		if t, ok := results[0].(*lua.LTable); ok {
			h.exports = t
		}
	}

	h.state = StateLoaded
	h.err = nil
	h.log.Debug("loaded %s", h.manifest.MainPath())
	return nil
}

// lookup finds an entry point in the returned table, then in globals.
func (h *Host) lookup(name string) lua.LValue {
	if h.exports != nil {
		if fn := h.exports.RawGetString(name); fn.Type() == lua.LTFunction {
			return fn
		}
	}
	if fn := h.lstate.GetGlobal(name); fn.Type() == lua.LTFunction {
		return fn
	}
	return nil
}

func (h *Host) newContext() *lua.LTable {
	L := h.lstate.L
	c := L.NewTable()
	c.RawSetString("subscriptions", L.NewTable())
	c.RawSetString("extensionPath", lua.LString(h.manifest.Dir()))

	ext := L.NewTable()
	ext.RawSetString("id", lua.LString(h.manifest.ID()))
	ext.RawSetString("extensionPath", lua.LString(h.manifest.Dir()))
	c.RawSetString("extension", ext)

	c.RawSetString("asAbsolutePath", L.NewFunction(func(L *lua.LState) int {
		rel := L.CheckString(L.GetTop())
		L.Push(lua.LString(filepath.Join(h.manifest.Dir(), rel)))
		return 1
	}))
	return c
}

// Activate calls activate(context).
func (h *Host) Activate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != StateLoaded {
		return ErrNotLoaded
	}

	h.context = h.newContext()
	if fn := h.lookup("activate"); fn != nil {
		if _, err := h.lstate.Call(fn, h.context); err != nil {
			h.disposeSubscriptions()
			h.module.DisposeAll()
			return h.fail(fmt.Errorf("activating: %w", err))
		}
	}

	h.state = StateActive
	h.log.Info("activated")
	return nil
}

// Deactivate calls deactivate() and disposes everything the extension
// registered, subscriptions first.
func (h *Host) Deactivate(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.deactivate()
}

func (h *Host) deactivate() error {
	if h.state != StateActive {
		return nil
	}

	var err error
	if fn := h.lookup("deactivate"); fn != nil {
		if _, callErr := h.lstate.Call(fn); callErr != nil {
			err = fmt.Errorf("deactivating: %w", callErr)
			h.log.Error("%v", err)
		}
	}
	h.disposeSubscriptions()
	h.module.DisposeAll()

	h.state = StateLoaded
	h.log.Info("deactivated")
	return err
}

// disposeSubscriptions calls dispose on each entry of context.subscriptions.
func (h *Host) disposeSubscriptions() {
	if h.context == nil {
		return
	}
	subs, ok := h.context.RawGetString("subscriptions").(*lua.LTable)
	if !ok {
		return
	}
	for i := 1; i <= subs.Len(); i++ {
		d, ok := subs.RawGetInt(i).(*lua.LTable)
		if !ok {
			continue
		}
		fn := d.RawGetString("dispose")
		if fn.Type() != lua.LTFunction {
			continue
		}
		if _, err := h.lstate.Call(fn, d); err != nil {
			h.log.Warn("disposing subscription %d: %v", i, err)
		}
	}
	h.context.RawSetString("subscriptions", h.lstate.L.NewTable())
}

// Unload deactivates the extension if needed and closes its Lua state.
func (h *Host) Unload(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == StateUnloaded {
		return nil
	}
	err := h.deactivate()
	if h.module != nil {
		h.module.DisposeAll()
	}
	if h.lstate != nil {
		h.lstate.Close()
	}
	h.lstate = nil
	h.module = nil
	h.exports = nil
	h.context = nil
	h.state = StateUnloaded
	h.err = nil
	return err
}

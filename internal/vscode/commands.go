package vscode

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/vscompat/internal/engine"
	"github.com/dshills/vscompat/internal/host"
	"github.com/dshills/vscompat/internal/logging"
)

// CommandHandler runs a registered command.
type CommandHandler func(args ...any) (any, error)

// TextEditorCommandHandler runs a command against the active editor.
type TextEditorCommandHandler func(editor *TextEditor, edit *TextEditorEdit, args ...any) (any, error)

// Commands registers extension commands with the engine and runs them.
type Commands struct {
	manager  *host.EditorManager
	contribs *host.Contributions
	log      *logging.Logger

	mu sync.Mutex
}

func newCommands(m *host.EditorManager, c *host.Contributions, log *logging.Logger) *Commands {
	return &Commands{manager: m, contribs: c, log: log}
}

func (c *Commands) native() *engine.CommandManager {
	return c.manager.Editor().Commands()
}

func (c *Commands) register(id string, exec engine.CommandFunc) (Disposable, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	reg := c.native()
	if reg.Has(id) {
		return nil, fmt.Errorf("%w: %s", ErrCommandExists, id)
	}
	cmd := &engine.Command{
		Name:        id,
		Description: c.contribs.Description(id),
		Exec:        exec,
	}
	if err := reg.AddCommand(cmd); err != nil {
		return nil, err
	}
	c.log.Debug("registered command %s", id)

	return ToDisposable(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if cur, ok := reg.Command(id); ok && cur == cmd {
			reg.RemoveCommand(id)
			c.log.Debug("removed command %s", id)
		}
	}), nil
}

// RegisterCommand makes cb available under id. Registering an id that the
// engine already knows fails with ErrCommandExists.
func (c *Commands) RegisterCommand(id string, cb CommandHandler) (Disposable, error) {
	if cb == nil {
		return nil, fmt.Errorf("%w: %s has no handler", engine.ErrInvalidCommand, id)
	}
	return c.register(id, func(_ *engine.Editor, args []any) (any, error) {
		return cb(args...)
	})
}

// RegisterTextEditorCommand makes cb available under id. When run, cb gets
// the active editor and an edit builder bound to its session.
func (c *Commands) RegisterTextEditorCommand(id string, cb TextEditorCommandHandler) (Disposable, error) {
	if cb == nil {
		return nil, fmt.Errorf("%w: %s has no handler", engine.ErrInvalidCommand, id)
	}
	return c.register(id, func(ed *engine.Editor, args []any) (any, error) {
		if ed == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoActiveEditor, id)
		}
		s := ed.Session()
		if s == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoActiveEditor, id)
		}
		return cb(newTextEditor(s, c.manager), newTextEditorEdit(s), args...)
	})
}

// ExecuteCommand runs the command with id and returns its result. Ids with a
// native override in the contributions run the native command instead.
func (c *Commands) ExecuteCommand(ctx context.Context, id string, args ...any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := c.contribs.NativeID(id)
	if name != id {
		c.log.Debug("executing %s as %s", id, name)
	}
	return c.manager.Editor().ExecCommand(name, args...)
}

// GetCommands returns the known command ids in sorted order. With
// filterInternal set, ids starting with an underscore are left out.
func (c *Commands) GetCommands(filterInternal bool) []string {
	names := c.native().Names()
	if !filterInternal {
		return names
	}
	out := names[:0]
	for _, n := range names {
		if !strings.HasPrefix(n, "_") {
			out = append(out, n)
		}
	}
	return out
}

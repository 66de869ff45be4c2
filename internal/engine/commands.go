package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Command manager events.
const (
	EventExec      = "exec"
	EventAfterExec = "afterExec"
)

// CommandFunc runs a command against an editor. The returned value is handed
// back to the caller of Exec.
type CommandFunc func(ed *Editor, args []any) (any, error)

// Command is an entry in the command registry.
type Command struct {
	Name        string
	Description string
	Exec        CommandFunc
}

// ExecEvent is the payload of exec and afterExec events.
type ExecEvent struct {
	Command *Command
	Editor  *Editor
	Args    []any
	Result  any
	Err     error
}

// CommandManager is the engine's command registry.
type CommandManager struct {
	Emitter

	mu       sync.RWMutex
	commands map[string]*Command
}

// NewCommandManager creates an empty registry.
func NewCommandManager() *CommandManager {
	return &CommandManager{
		commands: make(map[string]*Command),
	}
}

// AddCommand registers cmd, replacing any command with the same name.
func (m *CommandManager) AddCommand(cmd *Command) error {
	if cmd == nil || cmd.Name == "" || cmd.Exec == nil {
		return ErrInvalidCommand
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[cmd.Name] = cmd
	return nil
}

// RemoveCommand unregisters a command. It returns false if no command had
// that name.
func (m *CommandManager) RemoveCommand(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.commands[name]
	delete(m.commands, name)
	return ok
}

// Command returns the command registered under name.
func (m *CommandManager) Command(name string) (*Command, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cmd, ok := m.commands[name]
	return cmd, ok
}

// Has reports whether a command is registered under name.
func (m *CommandManager) Has(name string) bool {
	_, ok := m.Command(name)
	return ok
}

// Names returns the sorted names of all registered commands.
func (m *CommandManager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.commands))
	for name := range m.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exec runs the named command synchronously and returns its result.
// The result travels back on the call stack, so nested Exec calls from
// inside a command cannot overwrite each other's results.
func (m *CommandManager) Exec(name string, ed *Editor, args []any) (any, error) {
	cmd, ok := m.Command(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}

	ev := &ExecEvent{Command: cmd, Editor: ed, Args: args}
	m.Emit(EventExec, ev)

	ev.Result, ev.Err = cmd.Exec(ed, args)

	m.Emit(EventAfterExec, ev)
	return ev.Result, ev.Err
}

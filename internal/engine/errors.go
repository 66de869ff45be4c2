package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrReadOnly indicates a mutation was attempted on a read-only session.
	ErrReadOnly = errors.New("session is read-only")

	// ErrInvalidNewLineMode indicates a new line mode the engine does not know.
	ErrInvalidNewLineMode = errors.New("invalid new line mode")

	// ErrCommandNotFound indicates Exec was called with an unknown command name.
	ErrCommandNotFound = errors.New("command not found")

	// ErrInvalidCommand indicates a command without a name or exec function.
	ErrInvalidCommand = errors.New("invalid command")
)

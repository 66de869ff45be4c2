package vscode

import (
	"errors"

	"github.com/dshills/vscompat/internal/engine"
)

var (
	// ErrUnsupported is wrapped by every member the engine cannot back.
	ErrUnsupported = errors.New("not supported by this host")
	// ErrCommandExists is returned when an id is registered twice.
	ErrCommandExists = errors.New("command already registered")
	// ErrCommandNotFound is the engine's error for unknown commands.
	ErrCommandNotFound = engine.ErrCommandNotFound
	// ErrNoActiveEditor is returned when a text editor command runs with no open file.
	ErrNoActiveEditor = errors.New("no active text editor")
	// ErrInvalidCoordinate reports a negative or out-of-range position.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInvalidEndOfLine reports an EndOfLine value other than LF or CRLF.
	ErrInvalidEndOfLine = errors.New("invalid end of line")
	// ErrInvalidConfigurationKey reports an empty settings key.
	ErrInvalidConfigurationKey = errors.New("invalid configuration key")
	// ErrUnrepresentableEOL reports a native newline with no EndOfLine equivalent.
	ErrUnrepresentableEOL = errors.New("newline mode has no end of line equivalent")
)

// UnsupportedError names the API member that was called.
type UnsupportedError struct {
	Member string
}

// Error names the member and says it is unsupported.
func (e *UnsupportedError) Error() string {
	return e.Member + ": " + ErrUnsupported.Error()
}

// Unwrap returns ErrUnsupported.
func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

func unsupported(member string) error {
	return &UnsupportedError{Member: member}
}

package vscode

import (
	"fmt"

	"github.com/dshills/vscompat/internal/engine"
)

// EndOfLine is a document's line terminator.
type EndOfLine int

const (
	// LF is the \n terminator.
	LF EndOfLine = 1
	// CRLF is the \r\n terminator.
	CRLF EndOfLine = 2
)

// String returns LF or CRLF.
func (e EndOfLine) String() string {
	switch e {
	case LF:
		return "LF"
	case CRLF:
		return "CRLF"
	}
	return fmt.Sprintf("EndOfLine(%d)", int(e))
}

// Sequence returns the characters that terminate a line.
func (e EndOfLine) Sequence() string {
	if e == CRLF {
		return "\r\n"
	}
	return "\n"
}

// ToNative maps e to an engine newline mode.
func (e EndOfLine) ToNative() (engine.NewLineMode, error) {
	switch e {
	case LF:
		return engine.NewLineUnix, nil
	case CRLF:
		return engine.NewLineWindows, nil
	}
	return "", fmt.Errorf("%w: %d", ErrInvalidEndOfLine, int(e))
}

// EndOfLineFromNative maps an engine newline mode. Auto mode resolves to
// the newline the document actually uses.
func EndOfLineFromNative(mode engine.NewLineMode, effective string) (EndOfLine, error) {
	switch mode {
	case engine.NewLineUnix:
		return LF, nil
	case engine.NewLineWindows:
		return CRLF, nil
	case engine.NewLineAuto:
		switch effective {
		case "\n":
			return LF, nil
		case "\r\n":
			return CRLF, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrUnrepresentableEOL, effective)
	}
	return 0, fmt.Errorf("%w: %s", ErrUnrepresentableEOL, mode)
}

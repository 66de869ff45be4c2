// Package logging provides component loggers for vscompat.
//
// Loggers are thin wrappers over commonlog so that every package logs through
// the same backend and verbosity. Configure should be called once at startup;
// until then commonlog discards output.
package logging

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple" // registers the default backend
)

// Root is the name all component loggers are nested under.
const Root = "vscompat"

// Configure sets the verbosity and optional log file path for all loggers.
// Verbosity follows commonlog: 0 is errors only, each step adds a level,
// and a negative value disables logging.
func Configure(verbosity int, path string) {
	if path == "" {
		commonlog.Configure(verbosity, nil)
		return
	}
	commonlog.Configure(verbosity, &path)
}

// Logger provides leveled, printf-style logging for one component.
type Logger struct {
	name   string
	fields map[string]any
}

// New returns a logger for the named component.
func New(component string) *Logger {
	name := Root
	if component != "" {
		name = Root + "." + component
	}
	return &Logger{name: name}
}

// Nop returns a logger that writes nothing regardless of configuration.
func Nop() *Logger {
	return nil
}

// WithComponent returns a logger for a sub-component.
func (l *Logger) WithComponent(component string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{name: l.name + "." + component, fields: l.fields}
}

// WithField returns a logger that appends key=value to every message.
func (l *Logger) WithField(key string, value any) *Logger {
	if l == nil {
		return nil
	}
	fields := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &Logger{name: l.name, fields: fields}
}

// Name returns the commonlog name of the logger.
func (l *Logger) Name() string {
	if l == nil {
		return ""
	}
	return l.name
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	if l == nil {
		return
	}
	l.backend().Debug(l.format(msg, args))
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	if l == nil {
		return
	}
	l.backend().Info(l.format(msg, args))
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	if l == nil {
		return
	}
	l.backend().Warning(l.format(msg, args))
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	if l == nil {
		return
	}
	l.backend().Error(l.format(msg, args))
}

func (l *Logger) backend() commonlog.Logger {
	return commonlog.GetLogger(l.name)
}

// format renders msg with args and the logger's fields in key order.
func (l *Logger) format(msg string, args []any) string {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	if len(l.fields) == 0 {
		return msg
	}
	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(msg)
	b.WriteString(" {")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, l.fields[k])
	}
	b.WriteString("}")
	return b.String()
}

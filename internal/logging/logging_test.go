package logging

import "testing"

func TestLoggerNames(t *testing.T) {
	l := New("commands")
	if l.Name() != "vscompat.commands" {
		t.Errorf("expected %q, got %q", "vscompat.commands", l.Name())
	}
	if got := l.WithComponent("dispatch").Name(); got != "vscompat.commands.dispatch" {
		t.Errorf("unexpected sub-component name %q", got)
	}
	if New("").Name() != Root {
		t.Errorf("expected root name, got %q", New("").Name())
	}
}

func TestLoggerFormatFields(t *testing.T) {
	l := New("x").WithField("b", 2).WithField("a", "one")

	got := l.format("hello %s", []any{"world"})
	want := "hello world {a=one, b=2}"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	parent := New("x").WithField("k", 1)
	_ = parent.WithField("k", 2)

	if parent.fields["k"] != 1 {
		t.Errorf("expected parent field unchanged, got %v", parent.fields["k"])
	}
}

func TestNopLogger(t *testing.T) {
	l := Nop()
	// Must not panic.
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	if l.WithComponent("y") != nil || l.WithField("k", "v") != nil {
		t.Error("expected nop logger to stay nop")
	}
}

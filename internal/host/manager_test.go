package host

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/vscompat/internal/engine"
)

func TestOpenFileEmitsLoadedThenSwitch(t *testing.T) {
	m := NewEditorManager()

	var events []string
	m.On(EventFileLoaded, func(data any) { events = append(events, "loaded:"+data.(*File).Name()) })
	m.On(EventSwitchFile, func(data any) { events = append(events, "switch:"+data.(*File).Name()) })

	f := m.OpenFile("a.txt", "", "hello")

	want := []string{"loaded:a.txt", "switch:a.txt"}
	if strings.Join(events, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, events)
	}
	if m.ActiveFile() != f {
		t.Error("expected opened file to be active")
	}
	if m.Editor().Session() != f.Session() {
		t.Error("expected editor to show the opened session")
	}
	if !strings.HasPrefix(f.URI(), "untitled:") || !f.IsUnsaved() {
		t.Errorf("expected untitled uri, got %q", f.URI())
	}
}

func TestSwitchFile(t *testing.T) {
	m := NewEditorManager()
	a := m.OpenFile("a", "", "a")
	b := m.OpenFile("b", "", "b")

	if m.ActiveFile() != b {
		t.Fatal("expected last opened file to be active")
	}
	if err := m.SwitchFile(a.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ActiveFile() != a || m.Editor().Session() != a.Session() {
		t.Error("expected a to be active")
	}
	if err := m.SwitchFile("nope"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestChangedForwardsEveryOpenFile(t *testing.T) {
	m := NewEditorManager()
	a := m.OpenFile("a", "", "abc")
	b := m.OpenFile("b", "", "xyz")

	var got []engine.ChangeEvent
	m.On(EventChanged, func(data any) { got = append(got, data.(engine.ChangeEvent)) })

	if _, err := b.Session().Insert(engine.Point{Row: 0, Column: 3}, "d"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Session != b.Session() {
		t.Fatalf("expected one change for the active session, got %v", got)
	}

	// a is in the background; its edits are still reported.
	if _, err := a.Session().Insert(engine.Point{Row: 0, Column: 0}, "X"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[1].Session != a.Session() {
		t.Fatalf("expected a change for the background session, got %v", got)
	}

	if err := m.CloseFile(a.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := a.Session().Insert(engine.Point{Row: 0, Column: 0}, "Y"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected no change after close, got %d events", len(got))
	}
}

func TestCloseFileActivatesLastTab(t *testing.T) {
	m := NewEditorManager()
	a := m.OpenFile("a", "", "")
	b := m.OpenFile("b", "", "")

	if err := m.CloseFile(b.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ActiveFile() != a {
		t.Error("expected a to become active")
	}
	if err := m.CloseFile(a.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ActiveFile() != nil || m.Editor().Session() != nil {
		t.Error("expected no active file")
	}
	if len(m.Files()) != 0 {
		t.Errorf("expected no files, got %d", len(m.Files()))
	}
}

func TestOpenPathAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("one\ntwo"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewEditorManager()
	f, err := m.OpenPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Name() != "doc.txt" || f.IsUnsaved() {
		t.Errorf("unexpected file %q %q", f.Name(), f.URI())
	}

	if _, err := f.Session().Insert(engine.Point{}, "zero\n"); err != nil {
		t.Fatal(err)
	}
	if !f.IsDirty() {
		t.Error("expected file to be dirty after edit")
	}

	var saved int
	m.On(EventSaveFile, func(any) { saved++ })
	if err := m.SaveFile(f.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.IsDirty() {
		t.Error("expected file to be clean after save")
	}
	if saved != 1 {
		t.Errorf("expected 1 save event, got %d", saved)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "zero\none\ntwo" {
		t.Errorf("unexpected file content %q", string(data))
	}
}

func TestSaveUntitledFails(t *testing.T) {
	m := NewEditorManager()
	f := m.OpenFile("x", "", "x")
	if err := m.SaveFile(f.ID()); !errors.Is(err, ErrNotOnDisk) {
		t.Errorf("expected ErrNotOnDisk, got %v", err)
	}
}

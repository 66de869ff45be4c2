package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/tidwall/gjson"
)

const upperExtension = `
local vscode = require("vscode")

function activate(context)
	local d = vscode.commands.registerTextEditorCommand("demo.upper", function(editor, edit)
		local doc = editor.document
		local first = doc:lineAt(0)
		edit:replace(first.range, string.upper(first.text))
		vscode.window.showInformationMessage("upper " .. vscode.workspace.getConfiguration("demo").get("mode"))
		return doc.lineCount
	end)
	table.insert(context.subscriptions, d)
end
`

const configExtension = `
local vscode = require("vscode")

function activate(context)
	table.insert(context.subscriptions, vscode.workspace.onDidChangeConfiguration(function(e)
		if e.affectsConfiguration("demo") then
			vscode.window.showInformationMessage("mode " .. vscode.workspace.getConfiguration("demo").get("mode", "unset"))
		end
	end))
end
`

func writeExtension(t *testing.T) string {
	t.Helper()
	return writeExtensionCode(t, upperExtension)
}

func writeExtensionCode(t *testing.T, code string) string {
	t.Helper()
	dir := t.TempDir()
	pkg := `{
		"name": "demo",
		"publisher": "test",
		"version": "1.2.3",
		"contributes": {
			"commands": [{"command": "demo.upper", "title": "Uppercase first line"}],
			"configuration": {"properties": {"demo.mode": {"default": "loud"}}}
		}
	}`
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(pkg), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "extension.lua"), []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestRunCommand(t *testing.T) {
	ext := writeExtension(t)
	file := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(file, []byte("hello\nworld\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code := run([]string{"run", "-ext", ext, "-file", file, "-command", "demo.upper", "-save", "-v", "-1"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}

	out := stdout.String()
	if !gjson.Valid(out) {
		t.Fatalf("expected JSON output, got %q", out)
	}
	checks := map[string]string{
		"extension.id":      "test.demo",
		"extension.version": "1.2.3",
		"extension.state":   "active",
		"command.id":        "demo.upper",
		"command.result":    "3",
		"document.text":     "HELLO\nworld\n",
		"messages.0":        "upper loud",
		"document.dirty":    "false",
	}
	for path, want := range checks {
		if got := gjson.Get(out, path).String(); got != want {
			t.Errorf("%s: expected %q, got %q", path, want, got)
		}
	}

	if gjson.Get(out, "changes.#").Int() == 0 {
		t.Error("expected recorded changes")
	}
	if uri := gjson.Get(out, "changes.0.textDocument.uri").String(); !strings.HasPrefix(uri, "file://") {
		t.Errorf("expected file URI in change, got %q", uri)
	}

	saved, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if string(saved) != "HELLO\nworld\n" {
		t.Errorf("expected saved text, got %q", saved)
	}
}

func TestRunCommandError(t *testing.T) {
	ext := writeExtension(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"run", "-ext", ext, "-command", "demo.missing", "-v", "-1"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if gjson.Get(stdout.String(), "command.error").String() == "" {
		t.Errorf("expected command error in %s", stdout.String())
	}
}

func TestListCommands(t *testing.T) {
	ext := writeExtension(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"commands", "-ext", ext, "-v", "-1"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "demo.upper\tUppercase first line") {
		t.Errorf("expected demo.upper in output, got %q", stdout.String())
	}
}

func TestRunUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no args", nil, 2},
		{"unknown", []string{"bogus"}, 2},
		{"missing ext", []string{"run"}, 2},
		{"bad args", []string{"run", "-ext", "x", "-args", "{}"}, 1},
		{"watch without settings", []string{"run", "-ext", "x", "-watch"}, 1},
		{"version", []string{"version"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("expected exit %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseArgs(t *testing.T) {
	args, err := parseArgs(`["a", 2, true]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(args) != 3 || args[0] != "a" || args[1] != float64(2) || args[2] != true {
		t.Errorf("unexpected args %v", args)
	}
	if _, err := parseArgs(`"a"`); err == nil {
		t.Error("expected error for non-array")
	}
}

func writeSettings(t *testing.T, path, mode string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("[demo]\nmode = \""+mode+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatchSettingsNotifiesExtension(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.toml")
	writeSettings(t, settings, "loud")

	rt, err := newRunner(runOptions{
		extDir:   writeExtensionCode(t, configExtension),
		settings: settings,
		timeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	defer rt.close()
	if err := rt.start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rt.watchSettings(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for !slices.Contains(rt.toasts(), "mode quiet") {
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("expected a config change toast, got %v", rt.toasts())
		}
		// Rewrite until the watcher is registered; unchanged values emit nothing.
		writeSettings(t, settings, "quiet")
		time.Sleep(50 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected watch error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestRunWatchFor(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.toml")
	writeSettings(t, settings, "loud")
	ext := writeExtensionCode(t, configExtension)

	var stdout, stderr bytes.Buffer
	code := run([]string{"run", "-ext", ext, "-settings", settings, "-watch", "-watch-for", "100ms", "-v", "-1"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if got := gjson.Get(stdout.String(), "extension.state").String(); got != "active" {
		t.Errorf("expected active extension, got %q", got)
	}
}

func TestRunTerminalToast(t *testing.T) {
	var screen tcell.SimulationScreen
	orig := newScreen
	newScreen = func() (tcell.Screen, error) {
		screen = tcell.NewSimulationScreen("")
		return screen, nil
	}
	t.Cleanup(func() { newScreen = orig })

	ext := writeExtension(t)
	file := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(file, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code := run([]string{"run", "-ext", ext, "-file", file, "-command", "demo.upper", "-toast", "terminal", "-v", "-1"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if screen == nil {
		t.Fatal("expected a terminal screen to be created")
	}
	if got := gjson.Get(stdout.String(), "messages.0").String(); got != "upper loud" {
		t.Errorf("expected toast in report, got %q", got)
	}
}

func TestRunUnknownToast(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"run", "-ext", writeExtension(t), "-toast", "popup", "-v", "-1"}, &stdout, &stderr); code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
}

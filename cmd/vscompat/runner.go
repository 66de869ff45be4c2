package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dshills/vscompat/internal/extension"
	"github.com/dshills/vscompat/internal/host"
	"github.com/dshills/vscompat/internal/logging"
	"github.com/dshills/vscompat/internal/vscode"
)

// newScreen creates the terminal used by -toast terminal.
var newScreen = tcell.NewScreen

// runner wires one extension to a fresh editor.
type runner struct {
	manifest *extension.Manifest
	manager  *host.EditorManager
	settings *host.Settings
	api      *vscode.API
	ext      *extension.Host
	file     *host.File
	screen   tcell.Screen
	terminal *host.TerminalToaster

	mu       sync.Mutex
	messages []string
	changes  []protocol.DidChangeTextDocumentParams
	watch    vscode.Disposable
}

func newRunner(opts runOptions) (*runner, error) {
	manifest, err := extension.LoadManifest(opts.extDir)
	if err != nil {
		return nil, err
	}

	settings := host.NewSettings(nil)
	if opts.settings != "" {
		settings, err = host.LoadSettings(opts.settings)
		if err != nil {
			return nil, err
		}
	}
	for key, value := range manifest.ConfigurationDefaults() {
		if _, ok := settings.Get(key); !ok {
			settings.Set(key, value)
		}
	}

	rt := &runner{
		manifest: manifest,
		manager:  host.NewEditorManager(),
		settings: settings,
	}

	if opts.file != "" {
		rt.file, err = rt.manager.OpenPath(opts.file)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", opts.file, err)
		}
	}

	toastLog := host.NewLogToaster(logging.New("toast"))
	switch opts.toast {
	case "", "log":
	case "terminal":
		if rt.screen, err = newScreen(); err != nil {
			return nil, fmt.Errorf("creating terminal: %w", err)
		}
		if err := rt.screen.Init(); err != nil {
			rt.screen = nil
			return nil, fmt.Errorf("initializing terminal: %w", err)
		}
		rt.terminal = host.NewTerminalToaster(rt.screen)
	default:
		return nil, fmt.Errorf("-toast must be log or terminal, got %q", opts.toast)
	}
	toaster := host.ToasterFunc(func(message string, d time.Duration) {
		rt.mu.Lock()
		rt.messages = append(rt.messages, message)
		terminal := rt.terminal
		rt.mu.Unlock()
		if terminal != nil {
			terminal.Toast(message, d)
			return
		}
		toastLog.Toast(message, d)
	})

	rt.api = vscode.New(rt.manager, manifest.Contributions, toaster, settings)
	rt.watch = rt.api.Workspace.OnDidChangeTextDocument(func(e vscode.TextDocumentChangeEvent) {
		params := e.Protocol()
		rt.mu.Lock()
		rt.changes = append(rt.changes, params)
		rt.mu.Unlock()
	})
	rt.ext, err = extension.NewHost(manifest, rt.api, extension.WithHostCallTimeout(opts.timeout))
	if err != nil {
		rt.closeScreen()
		return nil, err
	}
	return rt, nil
}

func (rt *runner) start(ctx context.Context) error {
	if err := rt.ext.Load(ctx); err != nil {
		return err
	}
	return rt.ext.Activate(ctx)
}

// watchSettings reloads the settings file as it changes until ctx is done.
// Reloads, and the extension callbacks they trigger, run on the calling
// goroutine.
func (rt *runner) watchSettings(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if rt.screen != nil {
		go pollKeys(rt.screen, cancel)
	}

	posts := make(chan func())
	errc := make(chan error, 1)
	go func() {
		errc <- rt.settings.Watch(ctx, func(fn func()) {
			select {
			case posts <- fn:
			case <-ctx.Done():
			}
		})
	}()

	for {
		select {
		case fn := <-posts:
			fn()
		case err := <-errc:
			return err
		}
	}
}

// pollKeys cancels the watch on Escape, Ctrl-C or q. The screen swallows
// the terminal's interrupt signal.
func pollKeys(screen tcell.Screen, cancel context.CancelFunc) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		if key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC || (key.Key() == tcell.KeyRune && key.Rune() == 'q') {
			cancel()
			return
		}
	}
}

// closeScreen restores the terminal. It is safe to call more than once.
func (rt *runner) closeScreen() {
	rt.mu.Lock()
	terminal := rt.terminal
	rt.terminal = nil
	rt.mu.Unlock()
	if terminal != nil {
		terminal.Clear()
	}
	if rt.screen != nil {
		rt.screen.Fini()
		rt.screen = nil
	}
}

func (rt *runner) close() {
	rt.closeScreen()
	rt.watch.Dispose()
	if err := rt.ext.Unload(context.Background()); err != nil {
		logging.New("cli").Warn("unloading %s: %v", rt.manifest.ID(), err)
	}
}

func (rt *runner) toasts() []string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return append([]string(nil), rt.messages...)
}

// didChanges returns the document changes seen so far as LSP didChange
// parameters.
func (rt *runner) didChanges() []protocol.DidChangeTextDocumentParams {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return append([]protocol.DidChangeTextDocumentParams(nil), rt.changes...)
}

package vscode

import (
	"path/filepath"

	"github.com/dshills/vscompat/internal/engine"
	"github.com/dshills/vscompat/internal/host"
	"github.com/dshills/vscompat/internal/logging"
)

// Workspace exposes open documents, document events and settings.
type Workspace struct {
	manager  *host.EditorManager
	settings *host.Settings
	log      *logging.Logger
}

// TextDocuments returns a document for every open file.
func (w *Workspace) TextDocuments() []*TextDocument {
	files := w.manager.Files()
	out := make([]*TextDocument, 0, len(files))
	for _, f := range files {
		out = append(out, newTextDocument(f.Session(), w.manager))
	}
	return out
}

// OpenTextDocument opens the file at path, or returns the document if the
// file is already open.
func (w *Workspace) OpenTextDocument(path string) (*TextDocument, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	for _, f := range w.manager.Files() {
		if p, err := f.Path(); err == nil && p == filepath.ToSlash(abs) {
			return newTextDocument(f.Session(), w.manager), nil
		}
	}
	f, err := w.manager.OpenPath(path)
	if err != nil {
		return nil, err
	}
	w.log.Debug("opened %s", f.URI())
	return newTextDocument(f.Session(), w.manager), nil
}

// SaveTextDocument writes doc to disk.
func (w *Workspace) SaveTextDocument(doc *TextDocument) error {
	return w.manager.SaveFile(doc.ID())
}

// OnDidChangeTextDocument calls listener for every edit of an open document.
func (w *Workspace) OnDidChangeTextDocument(listener func(TextDocumentChangeEvent), deps ...Disposable) Disposable {
	return listen(w.manager, []string{host.EventChanged}, func(data any) {
		ev, ok := data.(engine.ChangeEvent)
		if !ok {
			return
		}
		listener(TextDocumentChangeEvent{
			Document:       newTextDocument(ev.Session, w.manager),
			ContentChanges: []TextDocumentContentChangeEvent{contentChange(ev.Session, ev.Delta)},
		})
	}, deps)
}

func (w *Workspace) onFile(event string, listener func(*TextDocument), deps []Disposable) Disposable {
	return listen(w.manager, []string{event}, func(data any) {
		if f, ok := data.(*host.File); ok {
			listener(newTextDocument(f.Session(), w.manager))
		}
	}, deps)
}

// OnDidOpenTextDocument calls listener when a file is loaded.
func (w *Workspace) OnDidOpenTextDocument(listener func(*TextDocument), deps ...Disposable) Disposable {
	return w.onFile(host.EventFileLoaded, listener, deps)
}

// OnDidCloseTextDocument calls listener when a file is closed.
func (w *Workspace) OnDidCloseTextDocument(listener func(*TextDocument), deps ...Disposable) Disposable {
	return w.onFile(host.EventRemoveFile, listener, deps)
}

// OnDidSaveTextDocument calls listener after a file is written.
func (w *Workspace) OnDidSaveTextDocument(listener func(*TextDocument), deps ...Disposable) Disposable {
	return w.onFile(host.EventSaveFile, listener, deps)
}

// OnWillSaveTextDocument calls listener when a file is loaded, since the
// engine offers no hook ahead of a save.
func (w *Workspace) OnWillSaveTextDocument(listener func(*TextDocumentWillSaveEvent), deps ...Disposable) Disposable {
	return w.onFile(host.EventFileLoaded, func(doc *TextDocument) {
		listener(&TextDocumentWillSaveEvent{Document: doc, Reason: SaveReasonManual})
	}, deps)
}

// OnDidChangeConfiguration calls listener when settings change.
func (w *Workspace) OnDidChangeConfiguration(listener func(ConfigurationChangeEvent), deps ...Disposable) Disposable {
	return listen(w.settings, []string{host.EventConfigChange}, func(data any) {
		if c, ok := data.(host.ConfigChange); ok {
			listener(ConfigurationChangeEvent{keys: c.Keys})
		}
	}, deps)
}

// GetConfiguration returns the settings under section. An empty section
// covers every setting.
func (w *Workspace) GetConfiguration(section string) *Configuration {
	return &Configuration{section: section, settings: w.settings}
}

// ApplyEdit is not supported.
func (w *Workspace) ApplyEdit() (bool, error) {
	return false, unsupported("workspace.applyEdit")
}

// FindFiles is not supported.
func (w *Workspace) FindFiles(include string) ([]string, error) {
	return nil, unsupported("workspace.findFiles")
}

// Configuration is a view of one settings section.
type Configuration struct {
	section  string
	settings *host.Settings
}

func (c *Configuration) key(k string) string {
	if c.section == "" {
		return k
	}
	if k == "" {
		return c.section
	}
	return c.section + "." + k
}

// Get returns the value under key. A key naming a subsection returns the
// subsection as a map.
func (c *Configuration) Get(key string) (any, bool) {
	full := c.key(key)
	if v, ok := c.settings.Get(full); ok {
		return v, true
	}
	if sub := c.settings.Section(full); len(sub) > 0 {
		return sub, true
	}
	return nil, false
}

// Has reports whether key has a value.
func (c *Configuration) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// GetString returns the string under key, or def.
func (c *Configuration) GetString(key, def string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// GetInt returns the number under key, or def.
func (c *Configuration) GetInt(key string, def int) int {
	v, ok := c.Get(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return def
}

// GetBool returns the boolean under key, or def.
func (c *Configuration) GetBool(key string, def bool) bool {
	if v, ok := c.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Update stores value under key in memory.
func (c *Configuration) Update(key string, value any) error {
	if key == "" {
		return ErrInvalidConfigurationKey
	}
	c.settings.Set(c.key(key), value)
	return nil
}

package host

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/vscompat/internal/engine"
	"github.com/dshills/vscompat/internal/logging"
)

// Editor manager events.
const (
	EventFileLoaded = "file-loaded"
	EventSwitchFile = "switch-file"
	EventChanged    = "changed"
	EventSaveFile   = "save-file"
	EventRemoveFile = "remove-file"
)

// File is an open tab: a session plus the name and location it was loaded from.
type File struct {
	name          string
	uri           string
	session       *engine.EditSession
	savedRevision int
	changeID      engine.ListenerID
	mu            sync.Mutex
}

// ID returns the id of the file's session.
func (f *File) ID() string {
	return f.session.ID()
}

// Name returns the display name of the file.
func (f *File) Name() string {
	return f.name
}

// URI returns the location of the file. Unsaved files use the untitled scheme.
func (f *File) URI() string {
	return f.uri
}

// Session returns the engine session holding the file's text.
func (f *File) Session() *engine.EditSession {
	return f.session
}

// IsUnsaved reports whether the file has no location on disk.
func (f *File) IsUnsaved() bool {
	return !strings.HasPrefix(f.uri, "file://")
}

// IsDirty reports whether the session changed since it was loaded or saved.
func (f *File) IsDirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session.Revision() != f.savedRevision
}

// Path returns the filesystem path for file:// URIs.
func (f *File) Path() (string, error) {
	u, err := url.Parse(f.uri)
	if err != nil {
		return "", err
	}
	if u.Scheme != "file" {
		return "", ErrNotOnDisk
	}
	return u.Path, nil
}

// EditorManager owns the open files and the single engine editor that shows
// the active one.
type EditorManager struct {
	engine.Emitter

	mu     sync.RWMutex
	editor *engine.Editor
	files  []*File
	active *File
	log    *logging.Logger
}

// ManagerOption configures an EditorManager.
type ManagerOption func(*EditorManager)

// WithManagerLogger sets the logger.
func WithManagerLogger(l *logging.Logger) ManagerOption {
	return func(m *EditorManager) {
		m.log = l
	}
}

// NewEditorManager creates a manager with no open files.
func NewEditorManager(opts ...ManagerOption) *EditorManager {
	m := &EditorManager{
		editor: engine.NewEditor(nil),
		log:    logging.New("host"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Editor returns the engine editor.
func (m *EditorManager) Editor() *engine.Editor {
	return m.editor
}

// ActiveFile returns the active file, or nil if none is open.
func (m *EditorManager) ActiveFile() *File {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Files returns the open files in tab order.
func (m *EditorManager) Files() []*File {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]*File, len(m.files))
	copy(files, m.files)
	return files
}

// File returns the open file with the given id.
func (m *EditorManager) File(id string) (*File, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, f := range m.files {
		if f.ID() == id {
			return f, true
		}
	}
	return nil, false
}

// FileForSession returns the open file that owns session.
func (m *EditorManager) FileForSession(s *engine.EditSession) (*File, bool) {
	if s == nil {
		return nil, false
	}
	return m.File(s.ID())
}

// OpenFile opens content as a new tab, emits file-loaded, and makes it active.
// An empty uri gives the file an untitled URI.
func (m *EditorManager) OpenFile(name, uri, content string, opts ...engine.Option) *File {
	if uri == "" {
		uri = "untitled:" + uuid.NewString()
	}
	opts = append([]engine.Option{engine.WithContent(content)}, opts...)
	f := &File{
		name:    name,
		uri:     uri,
		session: engine.NewEditSession(opts...),
	}

	f.changeID = f.session.On(engine.EventChange, func(data any) {
		if d, ok := data.(engine.Delta); ok {
			m.Emit(EventChanged, engine.ChangeEvent{Session: f.session, Delta: d})
		}
	})

	m.mu.Lock()
	m.files = append(m.files, f)
	m.mu.Unlock()

	m.log.Debug("loaded %s (%s)", name, uri)
	m.Emit(EventFileLoaded, f)
	_ = m.SwitchFile(f.ID())
	return f
}

// OpenPath reads a file from disk and opens it.
func (m *EditorManager) OpenPath(path string, opts ...engine.Option) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	uri := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	return m.OpenFile(filepath.Base(abs), uri, string(data), opts...), nil
}

// SwitchFile makes the file with id active and emits switch-file.
func (m *EditorManager) SwitchFile(id string) error {
	f, ok := m.File(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrFileNotFound, id)
	}

	m.mu.Lock()
	if m.active == f {
		m.mu.Unlock()
		return nil
	}
	m.active = f
	m.mu.Unlock()

	m.editor.SetSession(f.session)
	m.Emit(EventSwitchFile, f)
	return nil
}

// CloseFile closes the tab with id. Closing the active file activates the
// last remaining tab.
func (m *EditorManager) CloseFile(id string) error {
	m.mu.Lock()
	idx := -1
	for i, f := range m.files {
		if f.ID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrFileNotFound, id)
	}
	f := m.files[idx]
	m.files = append(m.files[:idx:idx], m.files[idx+1:]...)
	wasActive := m.active == f
	var next *File
	if wasActive {
		m.active = nil
		if len(m.files) > 0 {
			next = m.files[len(m.files)-1]
		}
	}
	m.mu.Unlock()

	f.session.Off(engine.EventChange, f.changeID)
	m.Emit(EventRemoveFile, f)
	if wasActive {
		if next != nil {
			return m.SwitchFile(next.ID())
		}
		m.editor.SetSession(nil)
	}
	return nil
}

// SaveFile writes a file:// file to disk, marks it clean, and emits save-file.
// The event fires after the write; the engine has no pre-save hook.
func (m *EditorManager) SaveFile(id string) error {
	f, ok := m.File(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrFileNotFound, id)
	}
	path, err := f.Path()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(f.session.Value()), 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	f.mu.Lock()
	f.savedRevision = f.session.Revision()
	f.mu.Unlock()

	m.log.Debug("saved %s", path)
	m.Emit(EventSaveFile, f)
	return nil
}

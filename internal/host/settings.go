package host

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/vscompat/internal/engine"
	"github.com/dshills/vscompat/internal/logging"
)

// EventConfigChange is emitted by Settings with a ConfigChange payload.
const EventConfigChange = "config-change"

// ConfigChange lists the dotted keys whose values changed.
type ConfigChange struct {
	Keys []string
}

// Settings is a flat store of dotted configuration keys, optionally backed by
// a TOML, YAML or JSON file.
type Settings struct {
	engine.Emitter

	mu     sync.RWMutex
	path   string
	values map[string]any
	log    *logging.Logger
}

// NewSettings creates an in-memory store. Nested maps are flattened.
func NewSettings(values map[string]any) *Settings {
	s := &Settings{
		values: make(map[string]any),
		log:    logging.New("settings"),
	}
	flatten("", values, s.values)
	return s
}

// LoadSettings reads the settings file at path.
func LoadSettings(path string) (*Settings, error) {
	values, err := readSettingsFile(path)
	if err != nil {
		return nil, err
	}
	s := NewSettings(nil)
	s.path = path
	s.values = values
	return s, nil
}

// Path returns the backing file, or "" for in-memory settings.
func (s *Settings) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *Settings) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

// Keys returns all keys in sorted order.
func (s *Settings) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.values)
}

// Section returns the values under prefix with the prefix removed.
// An empty prefix returns every value.
func (s *Settings) Section(prefix string) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]any)
	for k, v := range s.values {
		switch {
		case prefix == "":
			out[k] = v
		case strings.HasPrefix(k, prefix+"."):
			out[strings.TrimPrefix(k, prefix+".")] = v
		}
	}
	return out
}

// Set stores value under key and emits a change if the value differs.
func (s *Settings) Set(key string, value any) {
	s.mu.Lock()
	old, existed := s.values[key]
	s.values[key] = value
	s.mu.Unlock()

	if !existed || !reflect.DeepEqual(old, value) {
		s.Emit(EventConfigChange, ConfigChange{Keys: []string{key}})
	}
}

// Reload re-reads the backing file and emits the keys that changed.
func (s *Settings) Reload() error {
	if s.path == "" {
		return nil
	}
	values, err := readSettingsFile(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	changed := diffKeys(s.values, values)
	s.values = values
	s.mu.Unlock()

	if len(changed) > 0 {
		s.log.Debug("reloaded %s: %d keys changed", s.path, len(changed))
		s.Emit(EventConfigChange, ConfigChange{Keys: changed})
	}
	return nil
}

// Watch reloads the settings whenever the backing file changes, until ctx is
// done. Reloads are handed to post so they run on the caller's event loop;
// a nil post reloads on the watcher goroutine.
func (s *Settings) Watch(ctx context.Context, post func(func())) error {
	if s.path == "" {
		return fmt.Errorf("watch: settings have no backing file")
	}
	if post == nil {
		post = func(fn func()) { fn() }
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the directory: editors often save by renaming a temp file over
	// the original, which drops a watch on the file itself.
	abs, err := filepath.Abs(s.path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			post(func() {
				if err := s.Reload(); err != nil {
					s.log.Warn("reloading %s: %v", s.path, err)
				}
			})
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("watching %s: %v", s.path, err)
		}
	}
}

// readSettingsFile parses a settings file according to its extension.
func readSettingsFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".json":
		if !gjson.ValidBytes(data) {
			err = fmt.Errorf("invalid JSON")
		} else if m, ok := gjson.ParseBytes(data).Value().(map[string]any); ok {
			raw = m
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSettingsFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}

	values := make(map[string]any)
	flatten("", raw, values)
	return values, nil
}

// flatten copies nested maps into out under dotted keys.
func flatten(prefix string, in map[string]any, out map[string]any) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(key, nested, out)
			continue
		}
		out[key] = v
	}
}

// diffKeys returns the sorted keys that were added, removed or changed.
func diffKeys(old, updated map[string]any) []string {
	var keys []string
	for k, v := range updated {
		if ov, ok := old[k]; !ok || !reflect.DeepEqual(ov, v) {
			keys = append(keys, k)
		}
	}
	for k := range old {
		if _, ok := updated[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

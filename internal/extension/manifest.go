package extension

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/vscompat/internal/host"
)

// ManifestFile is the name of the manifest inside an extension directory.
const ManifestFile = "package.json"

// DefaultMain is the entry point used when package.json names none.
const DefaultMain = "extension.lua"

// Manifest is the part of package.json the host understands.
type Manifest struct {
	Name             string
	Publisher        string
	DisplayName      string
	Version          string
	Main             string
	ActivationEvents []string
	Contributions    *host.Contributions

	defaults map[string]any
	dir      string
}

// ParseManifest reads a manifest for the extension in dir.
func ParseManifest(data []byte, dir string) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrInvalidManifest)
	}
	doc := gjson.ParseBytes(data)

	m := &Manifest{
		Name:        doc.Get("name").String(),
		Publisher:   doc.Get("publisher").String(),
		DisplayName: doc.Get("displayName").String(),
		Version:     doc.Get("version").String(),
		Main:        doc.Get("main").String(),
		defaults:    make(map[string]any),
		dir:         dir,
	}
	if m.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidManifest)
	}
	if m.Main == "" {
		m.Main = DefaultMain
	}
	if !strings.HasSuffix(m.Main, ".lua") {
		return nil, fmt.Errorf("%w: main must be a .lua file, got %q", ErrInvalidManifest, m.Main)
	}
	for _, ev := range doc.Get("activationEvents").Array() {
		m.ActivationEvents = append(m.ActivationEvents, ev.String())
	}
	// contributes.configuration is either one object or a list of them.
	cfg := doc.Get("contributes.configuration")
	if cfg.IsArray() {
		for _, c := range cfg.Array() {
			m.readDefaults(c.Get("properties"))
		}
	} else {
		m.readDefaults(cfg.Get("properties"))
	}

	contribs, err := host.ParseContributions(data)
	if err != nil {
		return nil, err
	}
	m.Contributions = contribs
	return m, nil
}

func (m *Manifest) readDefaults(props gjson.Result) {
	props.ForEach(func(key, value gjson.Result) bool {
		if def := value.Get("default"); def.Exists() {
			m.defaults[key.String()] = def.Value()
		}
		return true
	})
}

// LoadManifest reads dir/package.json.
func LoadManifest(dir string) (*Manifest, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(abs, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return ParseManifest(data, abs)
}

// ID returns publisher.name, or the name when there is no publisher.
func (m *Manifest) ID() string {
	if m.Publisher == "" {
		return m.Name
	}
	return m.Publisher + "." + m.Name
}

// Dir returns the extension directory.
func (m *Manifest) Dir() string {
	return m.dir
}

// MainPath returns the path of the main Lua file.
func (m *Manifest) MainPath() string {
	return filepath.Join(m.dir, m.Main)
}

// ConfigurationDefaults returns the default values declared under
// contributes.configuration, keyed by setting name.
func (m *Manifest) ConfigurationDefaults() map[string]any {
	out := make(map[string]any, len(m.defaults))
	for k, v := range m.defaults {
		out[k] = v
	}
	return out
}

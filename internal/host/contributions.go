package host

import (
	"fmt"
	"os"
	"sync"

	"github.com/tidwall/gjson"
)

// CommandContribution is one entry of an extension's contributes.commands.
type CommandContribution struct {
	Command       string
	Title         string
	Category      string
	NativeCommand string // engine command to run instead of Command, if set
}

// Contributions is the static table mapping extension command ids to their
// titles and native command ids.
type Contributions struct {
	mu       sync.RWMutex
	order    []string
	commands map[string]CommandContribution
}

// NewContributions creates a table from explicit entries.
func NewContributions(cmds ...CommandContribution) *Contributions {
	c := &Contributions{commands: make(map[string]CommandContribution)}
	for _, cmd := range cmds {
		c.add(cmd)
	}
	return c
}

func (c *Contributions) add(cmd CommandContribution) {
	if _, exists := c.commands[cmd.Command]; !exists {
		c.order = append(c.order, cmd.Command)
	}
	c.commands[cmd.Command] = cmd
}

// ParseContributions reads contributes.commands from a package.json manifest.
func ParseContributions(manifest []byte) (*Contributions, error) {
	if !gjson.ValidBytes(manifest) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidManifest)
	}

	c := NewContributions()
	var err error
	gjson.GetBytes(manifest, "contributes.commands").ForEach(func(i, entry gjson.Result) bool {
		id := entry.Get("command").String()
		if id == "" {
			err = fmt.Errorf("%w: contributes.commands[%d] has no command id", ErrInvalidManifest, i.Int())
			return false
		}
		c.add(CommandContribution{
			Command:       id,
			Title:         entry.Get("title").String(),
			Category:      entry.Get("category").String(),
			NativeCommand: entry.Get("nativeCommand").String(),
		})
		return true
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// LoadContributions reads the manifest at path.
func LoadContributions(path string) (*Contributions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return ParseContributions(data)
}

// Lookup returns the contribution for id.
func (c *Contributions) Lookup(id string) (CommandContribution, bool) {
	if c == nil {
		return CommandContribution{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	cmd, ok := c.commands[id]
	return cmd, ok
}

// NativeID maps an extension command id to the engine command id.
// Ids without a native override map to themselves.
func (c *Contributions) NativeID(id string) string {
	if cmd, ok := c.Lookup(id); ok && cmd.NativeCommand != "" {
		return cmd.NativeCommand
	}
	return id
}

// Description returns the palette title for id, prefixed with its category.
func (c *Contributions) Description(id string) string {
	cmd, ok := c.Lookup(id)
	if !ok {
		return ""
	}
	if cmd.Category != "" && cmd.Title != "" {
		return cmd.Category + ": " + cmd.Title
	}
	return cmd.Title
}

// Commands returns all contributions in manifest order.
func (c *Contributions) Commands() []CommandContribution {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]CommandContribution, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.commands[id])
	}
	return out
}

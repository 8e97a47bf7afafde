// Package config handles the global fieldmenu configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/fieldmenu/internal/fields"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config represents the global fieldmenu configuration.
type Config struct {
	// DefaultVault is the name of the default vault (from Vaults map).
	DefaultVault string `toml:"default_vault"`

	// Vaults is a map of vault names to paths.
	Vaults map[string]string `toml:"vaults"`

	// Editor opens notes for `fmenu open`. Falls back to $EDITOR.
	Editor string `toml:"editor"`

	// UseIndex reads front-matter through the SQLite metadata index instead
	// of parsing every file on each lookup.
	UseIndex bool `toml:"use_index"`

	// UI controls optional theming.
	UI UIConfig `toml:"ui"`

	// Presets describe how attribute keys are edited.
	Presets fields.Presets `toml:"presets"`
}

// UIConfig represents optional theming preferences.
type UIConfig struct {
	// Accent is an ANSI color code ("0" to "255") or a hex color ("#RRGGBB").
	Accent string `toml:"accent"`
}

// GetEditor returns the editor to use, falling back to $EDITOR.
func (c *Config) GetEditor() string {
	if c.Editor != "" {
		return c.Editor
	}
	return os.Getenv("EDITOR")
}

// GetVaultPath returns the path for a named vault.
// If name is empty, returns the default vault path.
func (c *Config) GetVaultPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultVault
	}
	if name == "" {
		return "", fmt.Errorf("no default vault configured")
	}
	if path, ok := c.Vaults[name]; ok {
		return expandHome(path), nil
	}
	return "", fmt.Errorf("vault '%s' not found in config", name)
}

// Validate checks the preset tables. It returns every problem found, joined.
func (c *Config) Validate() error {
	var errs []error
	seen := make(map[string]int)
	for i, p := range c.Presets {
		where := fmt.Sprintf("presets[%d]", i)
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("%w: %s: name is required", ErrInvalid, where))
			continue
		}
		where = fmt.Sprintf("%s (%s)", where, p.Name)
		if p.Cycle && p.Multi {
			errs = append(errs, fmt.Errorf("%w: %s: cycle and multi are exclusive", ErrInvalid, where))
		}
		if (p.Cycle || p.Multi) && !p.HasValues() {
			errs = append(errs, fmt.Errorf("%w: %s: cycle and multi need values", ErrInvalid, where))
		}
		if first, ok := seen[p.Name]; ok {
			errs = append(errs, fmt.Errorf("%w: %s: duplicate of presets[%d]", ErrInvalid, where, first))
			continue
		}
		seen[p.Name] = i
	}
	return errors.Join(errs...)
}

// Load loads the configuration from the default location.
// Returns an empty config if the file doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom loads the configuration from path. A missing file yields an
// empty config.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return &cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: %s: unknown keys: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// ResolveConfigPath returns explicit when set, otherwise DefaultPath.
func ResolveConfigPath(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return expandHome(explicit)
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/fieldmenu/config.toml first (XDG style),
// then falls back to the OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "fieldmenu", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "fieldmenu", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// CreateDefault writes a commented starter config to path unless a file is
// already there. It reports whether a file was created.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# fieldmenu configuration

# Default vault name (must exist in [vaults] below)
# default_vault = "notes"

# Editor for "fmenu open" (defaults to $EDITOR)
# editor = "nvim"

# Read front-matter through the metadata index (run "fmenu reindex" first)
# use_index = false

# Named vaults
# [vaults]
# notes = "~/notes"

# Optional accent color: ANSI code (0-255) or hex (#RRGGBB)
# [ui]
# accent = "39"

# Presets decide how an attribute is edited from the link menu.
#   cycle = true  advances to the next value on click
#   multi = true  picks any subset of values
#   neither       picks exactly one value
# Keys without a preset get a toggle (true/false values) or a text prompt.
#
# [[presets]]
# name = "status"
# values = ["todo", "doing", "done"]
# cycle = true
#
# [[presets]]
# name = "tags"
# values = ["work", "home"]
# multi = true
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// Package config handles global remodel configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global remodel configuration.
type Config struct {
	// DefaultRoot is the name of the default export root (from Roots map).
	DefaultRoot string `toml:"default_root"`

	// Roots is a map of export root names to paths. An export root is the
	// directory holding one or more workspace folders of exported models.
	Roots map[string]string `toml:"roots"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// GetRootPath returns the path for a named export root.
// If name is empty, returns the default root path.
func (c *Config) GetRootPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultRoot
	}

	if c.Roots != nil {
		if path, ok := c.Roots[name]; ok {
			return path, nil
		}
	}

	if name == "" {
		return "", fmt.Errorf("no default export root configured")
	}

	return "", fmt.Errorf("export root '%s' not found in config", name)
}

// ListRoots returns all configured export roots with their paths.
func (c *Config) ListRoots() map[string]string {
	result := make(map[string]string)
	for name, path := range c.Roots {
		result[name] = path
	}
	return result
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/remodel/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "remodel", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "remodel", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// CreateDefault creates a default config file if it doesn't exist.
func CreateDefault() (string, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# remodel configuration

# Default export root name (must exist in [roots] below)
# default_root = "exports"

# Named export roots. Each holds workspace folders of exported models.
# [roots]
# exports = "/path/to/Raw Files"

# Optional UI accent color for terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}

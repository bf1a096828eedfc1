package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RootConfigFile is the per-export-root settings file name.
const RootConfigFile = "remodel.yaml"

// RootConfig represents export-root-level configuration from remodel.yaml.
// All fields are optional; command flags override these defaults.
type RootConfig struct {
	// RenameMode sets the default rename mode: "display_only" or "full".
	RenameMode string `yaml:"rename_mode,omitempty"`

	// UpdateVisuals controls whether column renames rewrite report visual
	// files by default (default: true).
	UpdateVisuals *bool `yaml:"update_visuals,omitempty"`

	// Backups controls whether a snapshot is taken before each rename
	// batch (default: true).
	Backups *bool `yaml:"backups,omitempty"`
}

// ShouldUpdateVisuals returns the visual-update default.
func (c *RootConfig) ShouldUpdateVisuals() bool {
	if c == nil || c.UpdateVisuals == nil {
		return true
	}
	return *c.UpdateVisuals
}

// ShouldBackup returns the backup default.
func (c *RootConfig) ShouldBackup() bool {
	if c == nil || c.Backups == nil {
		return true
	}
	return *c.Backups
}

// LoadRootConfig loads remodel.yaml from an export root.
// Returns an empty config if the file doesn't exist.
func LoadRootConfig(exportRoot string) (*RootConfig, error) {
	path := filepath.Join(exportRoot, RootConfigFile)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &RootConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var config RootConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	switch config.RenameMode {
	case "", "display_only", "full":
	default:
		return nil, fmt.Errorf("invalid rename_mode %q in %s (expected display_only or full)", config.RenameMode, path)
	}

	return &config, nil
}

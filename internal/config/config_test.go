package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `
default_root = "exports"

[roots]
exports = "/data/Raw Files"
staging = "/data/staging"

[ui]
accent = "#FF8800"
`)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultRoot != "exports" {
		t.Errorf("DefaultRoot = %q", cfg.DefaultRoot)
	}
	if len(cfg.Roots) != 2 || cfg.Roots["staging"] != "/data/staging" {
		t.Errorf("Roots = %v", cfg.Roots)
	}
	if cfg.UI.Accent != "#FF8800" {
		t.Errorf("Accent = %q", cfg.UI.Accent)
	}
}

func TestLoadFromInvalidTOML(t *testing.T) {
	path := writeConfig(t, `default_root = [unclosed`)
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error")
	}
}

func TestGetRootPath(t *testing.T) {
	cfg := &Config{
		DefaultRoot: "exports",
		Roots: map[string]string{
			"exports": "/data/Raw Files",
			"staging": "/data/staging",
		},
	}

	if got, err := cfg.GetRootPath(""); err != nil || got != "/data/Raw Files" {
		t.Errorf("default: got %q, %v", got, err)
	}
	if got, err := cfg.GetRootPath("staging"); err != nil || got != "/data/staging" {
		t.Errorf("named: got %q, %v", got, err)
	}
	if _, err := cfg.GetRootPath("missing"); err == nil {
		t.Error("expected error for unknown root")
	}
}

func TestGetRootPathNoDefault(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.GetRootPath(""); err == nil {
		t.Error("expected error when no default is configured")
	}
}

func writeRootConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, RootConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadRootConfig(t *testing.T) {
	dir := writeRootConfig(t, "rename_mode: full\nupdate_visuals: false\nbackups: false\n")

	cfg, err := LoadRootConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RenameMode != "full" {
		t.Errorf("RenameMode = %q", cfg.RenameMode)
	}
	if cfg.ShouldUpdateVisuals() {
		t.Error("ShouldUpdateVisuals = true, want false")
	}
	if cfg.ShouldBackup() {
		t.Error("ShouldBackup = true, want false")
	}
}

func TestLoadRootConfigMissingFile(t *testing.T) {
	cfg, err := LoadRootConfig(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RenameMode != "" {
		t.Errorf("RenameMode = %q", cfg.RenameMode)
	}
	if !cfg.ShouldUpdateVisuals() || !cfg.ShouldBackup() {
		t.Error("defaults should be true")
	}
}

func TestLoadRootConfigInvalidMode(t *testing.T) {
	dir := writeRootConfig(t, "rename_mode: everything\n")
	if _, err := LoadRootConfig(dir); err == nil {
		t.Error("expected error for invalid rename_mode")
	}
}

func TestRootConfigNilDefaults(t *testing.T) {
	var cfg *RootConfig
	if !cfg.ShouldUpdateVisuals() || !cfg.ShouldBackup() {
		t.Error("nil config should default to true")
	}
}

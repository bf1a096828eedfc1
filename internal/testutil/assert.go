package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertFileExists fails the test if the file does not exist.
func (e *TestExport) AssertFileExists(relPath string) {
	e.t.Helper()
	fullPath := filepath.Join(e.Path, relPath)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		e.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (e *TestExport) AssertFileNotExists(relPath string) {
	e.t.Helper()
	fullPath := filepath.Join(e.Path, relPath)
	if _, err := os.Stat(fullPath); err == nil {
		e.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (e *TestExport) AssertFileContains(relPath, substr string) {
	e.t.Helper()
	content := e.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		e.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileNotContains fails the test if the file contains the substring.
func (e *TestExport) AssertFileNotContains(relPath, substr string) {
	e.t.Helper()
	content := e.ReadFile(relPath)
	if strings.Contains(content, substr) {
		e.t.Errorf("expected file %s to not contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertDirExists fails the test if the directory does not exist.
func (e *TestExport) AssertDirExists(relPath string) {
	e.t.Helper()
	fullPath := filepath.Join(e.Path, relPath)
	info, err := os.Stat(fullPath)
	if os.IsNotExist(err) {
		e.t.Errorf("expected directory to exist: %s", relPath)
		return
	}
	if !info.IsDir() {
		e.t.Errorf("expected %s to be a directory, but it's a file", relPath)
	}
}

// AssertContains fails the test if s does not contain the substring.
func AssertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("expected %q to contain %q", s, substr)
	}
}

// AssertNotContains fails the test if s contains the substring.
func AssertNotContains(t *testing.T, s, substr string) {
	t.Helper()
	if strings.Contains(s, substr) {
		t.Errorf("expected %q to not contain %q", s, substr)
	}
}

// Package testutil provides reusable test utilities for remodel integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/remodelcli/remodel/internal/model"
)

// TestExport represents a temporary export root for testing, holding
// workspace folders with semantic model and report directories.
type TestExport struct {
	Path  string
	t     *testing.T
	files map[string]string
}

// NewTestExport creates a new test export root builder.
// Call Build() to create the actual directory tree.
func NewTestExport(t *testing.T) *TestExport {
	t.Helper()
	return &TestExport{
		t:     t,
		files: make(map[string]string),
	}
}

// WithFile adds a file to the export root.
// The path is relative to the export root.
func (e *TestExport) WithFile(path, content string) *TestExport {
	e.files[path] = content
	return e
}

// WithTable adds a table TMDL file to a model in a workspace.
func (e *TestExport) WithTable(workspace, modelName, tableName, tmdl string) *TestExport {
	path := filepath.Join(workspace, modelName+model.SemanticModelSuffix,
		"definition", "tables", tableName+model.TMDLExt)
	return e.WithFile(path, tmdl)
}

// WithModelFile adds a file under a model's .SemanticModel folder.
// The path is relative to the model folder (e.g. "definition/model.tmdl").
func (e *TestExport) WithModelFile(workspace, modelName, relPath, content string) *TestExport {
	path := filepath.Join(workspace, modelName+model.SemanticModelSuffix, relPath)
	return e.WithFile(path, content)
}

// WithReportFile adds a file under a report's .Report folder.
// The path is relative to the report folder (e.g. "definition.pbir").
func (e *TestExport) WithReportFile(workspace, reportName, relPath, content string) *TestExport {
	path := filepath.Join(workspace, reportName+model.ReportSuffix, relPath)
	return e.WithFile(path, content)
}

// Build creates the export root directory and all configured files.
// Returns the TestExport for method chaining.
func (e *TestExport) Build() *TestExport {
	e.t.Helper()

	e.Path = e.t.TempDir()

	for path, content := range e.files {
		e.writeFile(path, content)
	}

	return e
}

// ModelPath returns the absolute path of a model folder in the export.
func (e *TestExport) ModelPath(workspace, modelName string) string {
	return filepath.Join(e.Path, workspace, modelName+model.SemanticModelSuffix)
}

// ReportPath returns the absolute path of a report folder in the export.
func (e *TestExport) ReportPath(workspace, reportName string) string {
	return filepath.Join(e.Path, workspace, reportName+model.ReportSuffix)
}

func (e *TestExport) writeFile(relPath, content string) {
	e.t.Helper()
	fullPath := filepath.Join(e.Path, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		e.t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a file from the export root.
// Returns the content as a string.
func (e *TestExport) ReadFile(relPath string) string {
	e.t.Helper()
	fullPath := filepath.Join(e.Path, relPath)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		e.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the export root.
func (e *TestExport) FileExists(relPath string) bool {
	e.t.Helper()
	fullPath := filepath.Join(e.Path, relPath)
	_, err := os.Stat(fullPath)
	return err == nil
}

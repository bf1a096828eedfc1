package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNameAndWorkspace(t *testing.T) {
	p := filepath.Join("root", "Finance", "Sales.SemanticModel")
	if got := Name(p); got != "Sales" {
		t.Errorf("Name = %q", got)
	}
	if got := WorkspaceName(p); got != "Finance" {
		t.Errorf("WorkspaceName = %q", got)
	}
}

func TestPairedReportDir(t *testing.T) {
	p := filepath.Join("root", "Finance", "Sales.SemanticModel")
	want := filepath.Join("root", "Finance", "Sales.Report")
	if got := PairedReportDir(p); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReportDirs(t *testing.T) {
	parent := t.TempDir()
	modelPath := filepath.Join(parent, "Sales.SemanticModel")
	for _, d := range []string{"Sales.SemanticModel", "Sales.Report", "Exec Dashboard.Report", "notes"} {
		if err := os.MkdirAll(filepath.Join(parent, d), 0755); err != nil {
			t.Fatal(err)
		}
	}

	reports, err := ReportDirs(modelPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d report dirs, want 2: %v", len(reports), reports)
	}
	if filepath.Base(reports[0]) != "Exec Dashboard.Report" || filepath.Base(reports[1]) != "Sales.Report" {
		t.Errorf("reports = %v", reports)
	}
}

func TestIsBuiltin(t *testing.T) {
	for name, want := range map[string]bool{
		"LocalDateTable_3f2c":     true,
		"DateTableTemplate_9a1b":  true,
		"Sales":                   false,
		"MyLocalDateTable_lookup": false,
	} {
		if got := IsBuiltin(name); got != want {
			t.Errorf("IsBuiltin(%q) = %v, want %v", name, got, want)
		}
	}
}

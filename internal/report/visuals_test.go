package report

import (
	"path/filepath"
	"testing"

	"github.com/remodelcli/remodel/internal/testutil"
)

func TestVisualFiles(t *testing.T) {
	exp := testutil.NewTestExport(t).
		WithReportFile("Finance", "Sales", "report.json", "{}").
		WithReportFile("Finance", "Sales", "definition/report.json", "{}").
		WithReportFile("Finance", "Sales", "definition/pages/page1/page.json", "{}").
		WithReportFile("Finance", "Sales", "definition/pages/page1/visuals/v1/visual.json", "{}").
		WithReportFile("Finance", "Sales", "definition/pages/page1/notes.txt", "skip me").
		WithReportFile("Finance", "Sales", DefinitionFile, testutil.DefinitionPBIR("Sales")).
		Build()

	files := VisualFiles(exp.ReportPath("Finance", "Sales"))
	if len(files) != 4 {
		t.Fatalf("got %d files: %v", len(files), files)
	}
	for _, f := range files {
		if filepath.Ext(f) != ".json" {
			t.Errorf("non-json file returned: %s", f)
		}
		if filepath.Base(f) == DefinitionFile {
			t.Errorf("connection file returned as visual: %s", f)
		}
	}
}

func TestVisualFilesEmptyReport(t *testing.T) {
	exp := testutil.NewTestExport(t).
		WithReportFile("Finance", "Sales", DefinitionFile, testutil.DefinitionPBIR("Sales")).
		Build()

	if files := VisualFiles(exp.ReportPath("Finance", "Sales")); files != nil {
		t.Errorf("got %v, want nil", files)
	}
}

package report

import (
	"path/filepath"
	"testing"

	"github.com/remodelcli/remodel/internal/testutil"
)

func TestRebindAllToLocal(t *testing.T) {
	exp := testutil.NewTestExport(t).
		WithTable("Finance", "Sales", "Sales", testutil.SalesTableTMDL()).
		WithReportFile("Finance", "Sales", DefinitionFile, testutil.RemotePBIR("Sales")).
		Build()

	r := NewRebinder(nil)
	success, failed := r.RebindAllToLocal(exp.ModelPath("Finance", "Sales"))
	if success != 1 || failed != 0 {
		t.Fatalf("success=%d failed=%d", success, failed)
	}
	exp.AssertFileContains("Finance/Sales.Report/definition.pbir", "../Sales.SemanticModel")
	exp.AssertFileNotContains("Finance/Sales.Report/definition.pbir", "byConnection")

	// Second run finds the report already local.
	success, failed = r.RebindAllToLocal(exp.ModelPath("Finance", "Sales"))
	if success != 1 || failed != 0 {
		t.Errorf("second run: success=%d failed=%d", success, failed)
	}
}

func TestRebindAllToLocalSkipsUnrelatedReports(t *testing.T) {
	exp := testutil.NewTestExport(t).
		WithTable("Finance", "Sales", "Sales", testutil.SalesTableTMDL()).
		WithReportFile("Finance", "Sales", DefinitionFile, testutil.RemotePBIR("Sales")).
		WithReportFile("Finance", "Budget", DefinitionFile, testutil.RemotePBIR("Budget")).
		Build()

	success, failed := NewRebinder(nil).RebindAllToLocal(exp.ModelPath("Finance", "Sales"))
	if success != 1 || failed != 0 {
		t.Fatalf("success=%d failed=%d", success, failed)
	}
	exp.AssertFileContains("Finance/Budget.Report/definition.pbir", "byConnection")
}

func TestSetLocalPreservesOtherKeys(t *testing.T) {
	exp := testutil.NewTestExport(t).
		WithReportFile("Finance", "Sales", DefinitionFile,
			`{"version":"4.0","datasetReference":{"byConnection":{"connectionString":"x"}},"settings":{"theme":"dark"}}`).
		Build()
	reportDir := exp.ReportPath("Finance", "Sales")

	if err := NewRebinder(nil).SetLocal(reportDir, "Sales"); err != nil {
		t.Fatal(err)
	}
	exp.AssertFileContains("Finance/Sales.Report/definition.pbir", `"version": "4.0"`)
	exp.AssertFileContains("Finance/Sales.Report/definition.pbir", `"theme": "dark"`)
	exp.AssertFileContains("Finance/Sales.Report/definition.pbir", `"path": "../Sales.SemanticModel"`)
}

func TestSetRemote(t *testing.T) {
	exp := testutil.NewTestExport(t).
		WithReportFile("Finance", "Sales", DefinitionFile, testutil.DefinitionPBIR("Sales")).
		Build()
	reportDir := exp.ReportPath("Finance", "Sales")

	err := NewRebinder(nil).SetRemote(reportDir, "My Workspace", "abc-123", "Sales")
	if err != nil {
		t.Fatal(err)
	}
	exp.AssertFileContains("Finance/Sales.Report/definition.pbir", "powerbi://api.powerbi.com/v1.0/myorg/My Workspace")
	exp.AssertFileContains("Finance/Sales.Report/definition.pbir", "Initial Catalog=Sales")
	exp.AssertFileContains("Finance/Sales.Report/definition.pbir", "semanticmodelid=abc-123")
	if got := ConnectionType(reportDir); got != ConnRemote {
		t.Errorf("ConnectionType = %q, want %q", got, ConnRemote)
	}
}

func TestRestoreConnection(t *testing.T) {
	exp := testutil.NewTestExport(t).
		WithReportFile("Finance", "Sales", DefinitionFile, testutil.DefinitionPBIR("Sales")).
		WithFile(filepath.Join("BACKUP", "Finance", "Sales_manual_20240101_120000", "Sales.Report", DefinitionFile),
			testutil.RemotePBIR("Sales")).
		Build()
	reportDir := exp.ReportPath("Finance", "Sales")
	backupPath := filepath.Join(exp.Path, "BACKUP", "Finance", "Sales_manual_20240101_120000")

	if err := NewRebinder(nil).RestoreConnection(reportDir, backupPath); err != nil {
		t.Fatal(err)
	}
	if got := ConnectionType(reportDir); got != ConnRemote {
		t.Errorf("ConnectionType = %q, want %q", got, ConnRemote)
	}
}

func TestRestoreConnectionMissingBackup(t *testing.T) {
	exp := testutil.NewTestExport(t).
		WithReportFile("Finance", "Sales", DefinitionFile, testutil.DefinitionPBIR("Sales")).
		Build()

	err := NewRebinder(nil).RestoreConnection(exp.ReportPath("Finance", "Sales"), filepath.Join(exp.Path, "nope"))
	if err == nil {
		t.Error("expected error")
	}
}

func TestConnectionType(t *testing.T) {
	exp := testutil.NewTestExport(t).
		WithReportFile("Finance", "Local", DefinitionFile, testutil.DefinitionPBIR("Local")).
		WithReportFile("Finance", "Remote", DefinitionFile, testutil.RemotePBIR("Remote")).
		WithReportFile("Finance", "Empty", DefinitionFile, `{"version":"4.0"}`).
		Build()

	if got := ConnectionType(exp.ReportPath("Finance", "Local")); got != ConnLocal {
		t.Errorf("local: got %q", got)
	}
	if got := ConnectionType(exp.ReportPath("Finance", "Remote")); got != ConnRemote {
		t.Errorf("remote: got %q", got)
	}
	if got := ConnectionType(exp.ReportPath("Finance", "Empty")); got != "" {
		t.Errorf("empty: got %q", got)
	}
	if got := ConnectionType(filepath.Join(exp.Path, "Finance", "Missing.Report")); got != "" {
		t.Errorf("missing: got %q", got)
	}
}

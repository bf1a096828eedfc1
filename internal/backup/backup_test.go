package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/remodelcli/remodel/internal/testutil"
)

func fixedClock(m *Manager, t time.Time) {
	m.now = func() time.Time { return t }
}

func buildExport(t *testing.T) (*testutil.TestExport, string) {
	t.Helper()
	exp := testutil.NewTestExport(t).
		WithTable("Finance", "Sales", "Sales", testutil.SalesTableTMDL()).
		WithModelFile("Finance", "Sales", "definition/model.tmdl", testutil.ModelTMDL("Sales")).
		WithReportFile("Finance", "Sales", "definition.pbir", testutil.DefinitionPBIR("Sales")).
		Build()
	return exp, exp.ModelPath("Finance", "Sales")
}

func TestSnapshot(t *testing.T) {
	exp, modelPath := buildExport(t)

	m := NewManager(nil)
	dest, err := m.Snapshot(modelPath, "table_rename")
	if err != nil {
		t.Fatal(err)
	}

	if filepath.Dir(filepath.Dir(dest)) != filepath.Join(exp.Path, DirName) {
		t.Errorf("snapshot outside backup root: %s", dest)
	}
	for _, p := range []string{
		filepath.Join(dest, "Sales.SemanticModel", "definition", "model.tmdl"),
		filepath.Join(dest, "Sales.SemanticModel", "definition", "tables", "Sales.tmdl"),
		filepath.Join(dest, "Sales.Report", "definition.pbir"),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing in snapshot: %s", p)
		}
	}
}

func TestSnapshotSameSecondCollision(t *testing.T) {
	_, modelPath := buildExport(t)

	m := NewManager(nil)
	fixedClock(m, time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local))

	first, err := m.Snapshot(modelPath, "table_rename")
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Snapshot(modelPath, "table_rename")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("snapshots collided: %s", first)
	}
	if filepath.Base(second) != filepath.Base(first)+"_2" {
		t.Errorf("second = %s, want %s_2", filepath.Base(second), filepath.Base(first))
	}
}

func TestSnapshotMissingModel(t *testing.T) {
	if _, err := NewManager(nil).Snapshot("/no/such/model", "manual"); err == nil {
		t.Error("expected error")
	}
}

func TestSnapshotWithoutReport(t *testing.T) {
	exp := testutil.NewTestExport(t).
		WithTable("Finance", "Orders", "Orders", "table Orders\n").
		Build()

	dest, err := NewManager(nil).Snapshot(exp.ModelPath("Finance", "Orders"), "manual")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dest, "Orders.SemanticModel")); err != nil {
		t.Error("model missing from snapshot")
	}
	if _, err := os.Stat(filepath.Join(dest, "Orders.Report")); !os.IsNotExist(err) {
		t.Error("unexpected report folder in snapshot")
	}
}

func TestRestore(t *testing.T) {
	exp, modelPath := buildExport(t)

	m := NewManager(nil)
	dest, err := m.Snapshot(modelPath, "table_rename")
	if err != nil {
		t.Fatal(err)
	}

	// Wreck the live copy.
	tableFile := filepath.Join(modelPath, "definition", "tables", "Sales.tmdl")
	if err := os.WriteFile(tableFile, []byte("table Broken\n"), 0644); err != nil {
		t.Fatal(err)
	}

	success, failed, _ := m.Restore(dest, filepath.Dir(modelPath), true, true)
	if failed != 0 || success != 2 {
		t.Fatalf("success=%d failed=%d", success, failed)
	}
	exp.AssertFileContains("Finance/Sales.SemanticModel/definition/tables/Sales.tmdl", "table Sales")
}

func TestRestoreModelOnly(t *testing.T) {
	exp, modelPath := buildExport(t)

	m := NewManager(nil)
	dest, err := m.Snapshot(modelPath, "table_rename")
	if err != nil {
		t.Fatal(err)
	}

	reportFile := filepath.Join(exp.Path, "Finance", "Sales.Report", "definition.pbir")
	if err := os.WriteFile(reportFile, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	success, failed, _ := m.Restore(dest, filepath.Dir(modelPath), true, false)
	if failed != 0 || success != 1 {
		t.Fatalf("success=%d failed=%d", success, failed)
	}
	// The report was deliberately left alone.
	exp.AssertFileContains("Finance/Sales.Report/definition.pbir", "{}")
}

func TestRestoreEmptyBackup(t *testing.T) {
	dir := t.TempDir()
	success, failed, messages := NewManager(nil).Restore(dir, dir, true, true)
	if success != 0 || failed != 1 || len(messages) == 0 {
		t.Errorf("success=%d failed=%d messages=%v", success, failed, messages)
	}
}

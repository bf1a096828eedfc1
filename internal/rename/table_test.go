package rename

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/remodelcli/remodel/internal/backup"
	"github.com/remodelcli/remodel/internal/testutil"
)

const readerRole = "role Reader\n" +
	"\tmodelPermission: read\n" +
	"\n" +
	"\ttablePermission Sales = Sales[Amount] > 0\n"

func buildModel(t *testing.T) (*testutil.TestExport, string) {
	t.Helper()
	exp := testutil.NewTestExport(t).
		WithTable("Finance", "Sales", "Sales", testutil.SalesTableTMDL()).
		WithTable("Finance", "Sales", "Customer", testutil.CustomerTableTMDL()).
		WithModelFile("Finance", "Sales", "definition/model.tmdl", testutil.ModelTMDL("Sales", "Customer")).
		WithModelFile("Finance", "Sales", "definition/relationships.tmdl", testutil.RelationshipsTMDL()).
		WithModelFile("Finance", "Sales", "definition/roles/Reader.tmdl", readerRole).
		WithReportFile("Finance", "Sales", "definition.pbir", testutil.RemotePBIR("Sales")).
		WithReportFile("Finance", "Sales", "definition/pages/page1/visuals/bar/visual.json", testutil.VisualJSON()).
		WithReportFile("Finance", "Sales", "report.json", testutil.EscapedVisualJSON()).
		Build()
	return exp, exp.ModelPath("Finance", "Sales")
}

func TestTableRenameDisplayOnly(t *testing.T) {
	exp, modelPath := buildModel(t)

	res := New(nil).Tables(modelPath, []TableRename{{Old: "Sales", New: "Orders"}}, ModeDisplayOnly)
	if !res.OK() {
		t.Fatalf("errors: %v", res.Errors)
	}

	tableFile := "Finance/Sales.SemanticModel/definition/tables/Sales.tmdl"
	exp.AssertFileExists(tableFile)
	exp.AssertFileContains(tableFile, "table Orders")
	exp.AssertFileContains(tableFile, "SUM(Orders[Amount])")

	// Physical binding stays on the backend name.
	exp.AssertFileContains(tableFile, `Item="Sales"`)
	exp.AssertFileContains(tableFile, "dbo_Sales")

	exp.AssertFileContains("Finance/Sales.SemanticModel/definition/model.tmdl", "ref table Orders")
	exp.AssertFileContains("Finance/Sales.SemanticModel/definition/model.tmdl", `"Orders","Customer"`)
	exp.AssertFileContains("Finance/Sales.SemanticModel/definition/relationships.tmdl", "Orders.'Customer Key'")
	exp.AssertFileContains("Finance/Sales.SemanticModel/definition/roles/Reader.tmdl", "tablePermission Orders")

	customerFile := "Finance/Sales.SemanticModel/definition/tables/Customer.tmdl"
	exp.AssertFileContains(customerFile, "SUM(Orders[Amount])")
	exp.AssertFileContains(customerFile, ", Orders)")
	exp.AssertFileContains(customerFile, `Item="Customer"`)

	visual := "Finance/Sales.Report/definition/pages/page1/visuals/bar/visual.json"
	exp.AssertFileContains(visual, `"Entity": "Orders"`)
	exp.AssertFileContains(visual, `"queryRef": "Orders.Total Amount"`)
	exp.AssertFileContains(visual, `"Entity": "Customer"`)
	exp.AssertFileContains(visual, `"queryRef": "Customer.Name"`)

	escaped := "Finance/Sales.Report/report.json"
	exp.AssertFileContains(escaped, `\"Entity\":\"Orders\"`)
	exp.AssertFileContains(escaped, `\"queryRef\":\"Orders.Amount\"`)
}

func TestTableRenameFull(t *testing.T) {
	exp, modelPath := buildModel(t)

	r := TableRename{Old: "Sales", New: "Orders", OldSchema: "dbo", NewSchema: "gold"}
	res := New(nil).Tables(modelPath, []TableRename{r}, ModeFull)
	if !res.OK() {
		t.Fatalf("errors: %v", res.Errors)
	}

	exp.AssertFileNotExists("Finance/Sales.SemanticModel/definition/tables/Sales.tmdl")
	tableFile := "Finance/Sales.SemanticModel/definition/tables/Orders.tmdl"
	exp.AssertFileExists(tableFile)
	exp.AssertFileContains(tableFile, "table Orders")
	exp.AssertFileContains(tableFile, `Item="Orders"`)
	exp.AssertFileContains(tableFile, `Schema="gold"`)
	exp.AssertFileContains(tableFile, "dbo_Orders = Source")
	exp.AssertFileNotContains(tableFile, "dbo_Sales")

	// A schema move applies to every table bound to the old schema.
	customerFile := "Finance/Sales.SemanticModel/definition/tables/Customer.tmdl"
	exp.AssertFileContains(customerFile, `Schema="gold"`)
	exp.AssertFileContains(customerFile, `Item="Customer"`)
}

func TestTableRenameCaseOnly(t *testing.T) {
	exp, modelPath := buildModel(t)

	res := New(nil).Tables(modelPath, []TableRename{{Old: "Sales", New: "SALES"}}, ModeFull)
	if !res.OK() {
		t.Fatalf("errors: %v", res.Errors)
	}

	tableFile := "Finance/Sales.SemanticModel/definition/tables/SALES.tmdl"
	exp.AssertFileExists(tableFile)
	exp.AssertFileContains(tableFile, "table SALES")
}

func TestTableRenameMissingTable(t *testing.T) {
	_, modelPath := buildModel(t)

	res := New(nil).Tables(modelPath, []TableRename{{Old: "Nope", New: "X"}}, ModeDisplayOnly)
	if res.OK() {
		t.Fatal("expected error for missing table")
	}
	if !strings.Contains(res.Errors[0], "table file not found") {
		t.Errorf("error = %q", res.Errors[0])
	}
}

func TestTablesMissingModelPath(t *testing.T) {
	res := New(nil).Tables("/no/such/model.SemanticModel", []TableRename{{Old: "A", New: "B"}}, ModeDisplayOnly)
	if res.OK() || !strings.Contains(res.Errors[0], "model path not found") {
		t.Errorf("result = %+v", res)
	}
}

func TestTablesSkipsNoops(t *testing.T) {
	exp, modelPath := buildModel(t)

	res := New(nil).Tables(modelPath, []TableRename{{Old: "Sales", New: "Sales"}}, ModeDisplayOnly)
	if !res.OK() || res.Success != 0 {
		t.Errorf("result = %+v", res)
	}
	exp.AssertFileContains("Finance/Sales.SemanticModel/definition/tables/Sales.tmdl", "table Sales")
}

func TestTablesSnapshotAndRebind(t *testing.T) {
	exp, modelPath := buildModel(t)

	res := New(nil).Tables(modelPath, []TableRename{{Old: "Sales", New: "Orders"}}, ModeDisplayOnly)
	if !res.OK() {
		t.Fatalf("errors: %v", res.Errors)
	}

	info, err := backup.Latest(modelPath, "table_rename")
	if err != nil {
		t.Fatal(err)
	}
	if info == nil {
		t.Fatal("no snapshot recorded")
	}
	if !info.HasModel || !info.HasReport {
		t.Errorf("snapshot contents: %+v", info)
	}

	// The snapshot holds the pre-rename state.
	snapRel, err := filepath.Rel(exp.Path, info.Path)
	if err != nil {
		t.Fatal(err)
	}
	exp.AssertFileContains(
		filepath.Join(snapRel, "Sales.SemanticModel", "definition", "tables", "Sales.tmdl"),
		"table Sales")

	// The rebind pass switched the report to the local model copy.
	exp.AssertFileContains("Finance/Sales.Report/definition.pbir", "../Sales.SemanticModel")
	exp.AssertFileNotContains("Finance/Sales.Report/definition.pbir", "powerbi://")
}

func TestTablesSkipBackups(t *testing.T) {
	exp, modelPath := buildModel(t)

	eng := New(nil)
	eng.SkipBackups()
	res := eng.Tables(modelPath, []TableRename{{Old: "Sales", New: "Orders"}}, ModeDisplayOnly)
	if !res.OK() {
		t.Fatalf("errors: %v", res.Errors)
	}
	exp.AssertFileNotExists("BACKUP")
}

func TestTableRenameCorruptVisual(t *testing.T) {
	exp, modelPath := buildModel(t)
	corrupt := filepath.Join(exp.Path, "Finance", "Sales.Report", "report.json")
	if err := os.WriteFile(corrupt, []byte("{ not json"), 0644); err != nil {
		t.Fatal(err)
	}

	res := New(nil).Tables(modelPath, []TableRename{{Old: "Sales", New: "Orders"}}, ModeDisplayOnly)
	if res.OK() {
		t.Fatal("expected an error for the corrupt visual file")
	}
	found := false
	for _, e := range res.Errors {
		if strings.Contains(e, "report.json") && strings.Contains(e, "not valid JSON") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors = %v", res.Errors)
	}

	// Healthy files were still rewritten.
	exp.AssertFileContains("Finance/Sales.SemanticModel/definition/tables/Sales.tmdl", "table Orders")
	exp.AssertFileContains("Finance/Sales.Report/definition/pages/page1/visuals/bar/visual.json", `"Entity": "Orders"`)
}

func TestTableRenameRoundTrip(t *testing.T) {
	exp, modelPath := buildModel(t)

	// The report was remote; rebind once first so the connection file is
	// stable across both renames.
	eng := New(nil)
	eng.SkipBackups()
	res := eng.Tables(modelPath, []TableRename{{Old: "Sales", New: "Revenue"}}, ModeDisplayOnly)
	if !res.OK() {
		t.Fatalf("forward errors: %v", res.Errors)
	}

	before := map[string]string{}
	for _, rel := range []string{
		"Finance/Sales.SemanticModel/definition/tables/Sales.tmdl",
		"Finance/Sales.SemanticModel/definition/tables/Customer.tmdl",
		"Finance/Sales.SemanticModel/definition/model.tmdl",
		"Finance/Sales.SemanticModel/definition/relationships.tmdl",
		"Finance/Sales.SemanticModel/definition/roles/Reader.tmdl",
		"Finance/Sales.Report/definition/pages/page1/visuals/bar/visual.json",
		"Finance/Sales.Report/report.json",
	} {
		before[rel] = exp.ReadFile(rel)
	}

	res = eng.Tables(modelPath, []TableRename{{Old: "Revenue", New: "Orders"}}, ModeDisplayOnly)
	if !res.OK() {
		t.Fatalf("A->B errors: %v", res.Errors)
	}
	res = eng.Tables(modelPath, []TableRename{{Old: "Orders", New: "Revenue"}}, ModeDisplayOnly)
	if !res.OK() {
		t.Fatalf("B->A errors: %v", res.Errors)
	}

	for rel, want := range before {
		if got := exp.ReadFile(rel); got != want {
			t.Errorf("%s not restored by round trip:\n--- before ---\n%s\n--- after ---\n%s", rel, want, got)
		}
	}
}

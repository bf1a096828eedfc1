package rewrite

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyRunsRulesInOrder(t *testing.T) {
	rules := []Rule{
		regexRule("first", `a`, "b"),
		regexRule("second", `b`, "c"),
	}
	out, changed := Apply("a", rules)
	if !changed || out != "c" {
		t.Errorf("got %q changed=%v, want %q", out, changed, "c")
	}
}

func TestFileWritesOnlyWhenChanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.tmdl")
	if err := os.WriteFile(path, []byte("table Sales\n"), 0644); err != nil {
		t.Fatal(err)
	}

	changed, err := File(path, TableDeclaration("Customer", "Client"))
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("expected no change for non-matching rules")
	}

	changed, err = File(path, TableDeclaration("Sales", "Orders"))
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("expected change")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "table Orders\n" {
		t.Errorf("file content = %q", data)
	}
}

func TestFileStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.tmdl")
	if err := os.WriteFile(path, []byte("\ufefftable Sales\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := File(path, TableDeclaration("Sales", "Orders")); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "table Orders\n" {
		t.Errorf("file content = %q, BOM should be dropped on rewrite", data)
	}
}

func TestLitEscapesDollarSigns(t *testing.T) {
	out, _ := Apply("table Sales\n", TableDeclaration("Sales", "US$ Sales"))
	if out != "table 'US$ Sales'\n" {
		t.Errorf("got %q", out)
	}
}

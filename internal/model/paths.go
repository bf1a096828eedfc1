// Package model reads the folder layout of a PBIP semantic model: the
// definition tree, table files, relationships, roles, and the naming
// convention that pairs a *.SemanticModel folder with its *.Report siblings.
package model

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// SemanticModelSuffix is the folder suffix for a semantic model package.
	SemanticModelSuffix = ".SemanticModel"
	// ReportSuffix is the folder suffix for a report package.
	ReportSuffix = ".Report"
	// TMDLExt is the extension of definition files.
	TMDLExt = ".tmdl"
)

// DefinitionDir returns the definition folder of a model.
func DefinitionDir(modelPath string) string {
	return filepath.Join(modelPath, "definition")
}

// TablesDir returns the folder holding one TMDL file per table.
func TablesDir(modelPath string) string {
	return filepath.Join(modelPath, "definition", "tables")
}

// TableFile returns the backing file for a table. The filename follows the
// table's backend name, which equals the display name unless a display-only
// rename has decoupled them.
func TableFile(modelPath, tableName string) string {
	return filepath.Join(TablesDir(modelPath), tableName+TMDLExt)
}

// ModelFile returns the model.tmdl path.
func ModelFile(modelPath string) string {
	return filepath.Join(modelPath, "definition", "model.tmdl")
}

// RelationshipsFile returns the relationships.tmdl path.
func RelationshipsFile(modelPath string) string {
	return filepath.Join(modelPath, "definition", "relationships.tmdl")
}

// RolesDir returns the folder holding role definition files.
func RolesDir(modelPath string) string {
	return filepath.Join(modelPath, "definition", "roles")
}

// Name returns the model's display name: the folder name without the
// .SemanticModel suffix.
func Name(modelPath string) string {
	return strings.TrimSuffix(filepath.Base(modelPath), SemanticModelSuffix)
}

// WorkspaceName returns the name of the workspace folder containing the model.
func WorkspaceName(modelPath string) string {
	return filepath.Base(filepath.Dir(modelPath))
}

// ReportDirs returns the sibling *.Report folders of a model, in lexical
// order. Pairing is by location only; whether a report actually references
// the model is decided by its connection file.
func ReportDirs(modelPath string) ([]string, error) {
	parent := filepath.Dir(modelPath)
	entries, err := os.ReadDir(parent)
	if err != nil {
		return nil, err
	}
	var reports []string
	for _, e := range entries {
		if e.IsDir() && strings.HasSuffix(e.Name(), ReportSuffix) {
			reports = append(reports, filepath.Join(parent, e.Name()))
		}
	}
	return reports, nil
}

// PairedReportDir returns the report folder paired with the model by naming
// convention (Sales.SemanticModel -> Sales.Report). The folder may not exist.
func PairedReportDir(modelPath string) string {
	parent := filepath.Dir(modelPath)
	return filepath.Join(parent, Name(modelPath)+ReportSuffix)
}

// IsBuiltin reports whether a table is an engine-generated one that must
// never be offered as a rename target. Auto-materialized date tables are
// recognizable by fixed name prefixes.
func IsBuiltin(tableName string) bool {
	return strings.HasPrefix(tableName, "DateTableTemplate_") ||
		strings.HasPrefix(tableName, "LocalDateTable_")
}

// ReadText reads a definition file and returns its content with any UTF-8
// byte-order mark stripped. Files are written back without a BOM.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

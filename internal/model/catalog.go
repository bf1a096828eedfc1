package model

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Table is a catalog entry for one table definition file.
type Table struct {
	Name    string   `json:"name"`
	File    string   `json:"file"`
	Schema  string   `json:"schema,omitempty"` // empty when no source binding declares one
	Columns []Column `json:"columns,omitempty"`
}

// Column is a catalog entry for one column of a table.
type Column struct {
	Name       string `json:"name"`
	DataType   string `json:"data_type"`
	SourceName string `json:"source_name,omitempty"`
	Hidden     bool   `json:"hidden,omitempty"`
	Calculated bool   `json:"calculated,omitempty"`
}

var (
	tableDeclRe  = regexp.MustCompile(`(?m)^table\s+(?:'([^']+)'|"([^"]+)"|(\S+))\s*$`)
	columnDeclRe = regexp.MustCompile(`^column\s+(?:'([^']+)'|"([^"]+)"|([\w]+))`)
	dataTypeRe   = regexp.MustCompile(`dataType:\s*(\w+)`)
	sourceColRe  = regexp.MustCompile(`sourceColumn:\s*"?([^"\r\n]+)"?`)
	schemaRe     = regexp.MustCompile(`\bSchema\s*=\s*"([^"]+)"`)
)

// ListTables reads the table catalog of a model. A model without a tables
// folder yields an empty catalog, not an error; engine built-ins are
// excluded. Pure read.
func ListTables(modelPath string) ([]Table, error) {
	tablesDir := TablesDir(modelPath)
	entries, err := os.ReadDir(tablesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var tables []Table
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), TMDLExt) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), TMDLExt)
		if IsBuiltin(name) {
			continue
		}
		file := filepath.Join(tablesDir, e.Name())
		t := Table{Name: name, File: file}

		content, err := ReadText(file)
		if err != nil {
			// A single unreadable file still leaves the rest of the
			// catalog usable.
			tables = append(tables, t)
			continue
		}
		// A display-only rename leaves the file under the backend name, so
		// the declared name wins over the file stem when they disagree.
		if m := tableDeclRe.FindStringSubmatch(content); m != nil {
			for _, g := range m[1:] {
				if g != "" {
					t.Name = g
					break
				}
			}
		}
		if m := schemaRe.FindStringSubmatch(content); m != nil {
			t.Schema = m[1]
		}
		t.Columns = parseColumns(content)
		tables = append(tables, t)
	}
	return tables, nil
}

// ListColumns reads the columns of a single table, resolved by display
// name (which may differ from the file stem after a display-only rename).
func ListColumns(modelPath, tableName string) ([]Column, error) {
	content, err := ReadText(TableFile(modelPath, tableName))
	if err == nil {
		return parseColumns(content), nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	tables, listErr := ListTables(modelPath)
	if listErr != nil {
		return nil, listErr
	}
	for _, t := range tables {
		if t.Name == tableName {
			return t.Columns, nil
		}
	}
	return nil, err
}

// parseColumns walks the line structure of a table definition. A column
// section runs from its declaration line until the next column, measure,
// hierarchy, or partition declaration.
func parseColumns(content string) []Column {
	var cols []Column
	var cur *Column

	flush := func() {
		if cur != nil {
			cols = append(cols, *cur)
			cur = nil
		}
	}

	for _, line := range strings.Split(content, "\n") {
		stripped := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(stripped, "column "):
			flush()
			if m := columnDeclRe.FindStringSubmatch(stripped); m != nil {
				name := m[1]
				if name == "" {
					name = m[2]
				}
				if name == "" {
					name = m[3]
				}
				cur = &Column{Name: name, DataType: "string", SourceName: name}
				// column X = <DAX> declares a calculated column inline.
				if strings.Contains(stripped, "=") {
					cur.Calculated = true
					cur.SourceName = ""
				}
			}
		case strings.HasPrefix(stripped, "measure "),
			strings.HasPrefix(stripped, "hierarchy "),
			strings.HasPrefix(stripped, "partition "):
			flush()
		case cur != nil:
			if m := dataTypeRe.FindStringSubmatch(stripped); m != nil {
				cur.DataType = m[1]
			}
			if m := sourceColRe.FindStringSubmatch(stripped); m != nil {
				cur.SourceName = strings.TrimSpace(m[1])
			}
			if stripped == "isHidden" {
				cur.Hidden = true
			}
			if strings.HasPrefix(stripped, "expression") || strings.Contains(stripped, "expression:") {
				cur.Calculated = true
			}
		}
	}
	flush()
	return cols
}

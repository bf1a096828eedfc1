package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/remodelcli/remodel/internal/model"
)

// Reindex walks the export root for *.SemanticModel folders and rebuilds
// their catalog rows. Returns how many models were indexed. Unreadable
// models are skipped and reported in errs without stopping the walk.
func (d *Database) Reindex(exportRoot string) (indexed int, errs []string) {
	var modelDirs []string
	_ = filepath.WalkDir(exportRoot, func(path string, de os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !de.IsDir() {
			return nil
		}
		name := de.Name()
		// Snapshots and the index's own folder are not live models.
		if name == ".remodel" || name == "BACKUP" {
			return filepath.SkipDir
		}
		if strings.HasSuffix(name, model.SemanticModelSuffix) {
			modelDirs = append(modelDirs, path)
			return filepath.SkipDir
		}
		return nil
	})

	for _, dir := range modelDirs {
		if err := d.indexModel(dir); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", model.Name(dir), err))
			continue
		}
		indexed++
	}
	return indexed, errs
}

// indexModel replaces one model's rows inside a single transaction.
func (d *Database) indexModel(modelPath string) error {
	tables, err := model.ListTables(modelPath)
	if err != nil {
		return err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	modelID, err := upsertModel(tx, model.WorkspaceName(modelPath), model.Name(modelPath), modelPath)
	if err != nil {
		return err
	}

	for _, t := range tables {
		res, err := tx.Exec(
			`INSERT INTO model_tables (model_id, name, schema_name, file) VALUES (?, ?, ?, ?)`,
			modelID, t.Name, t.Schema, t.File)
		if err != nil {
			return err
		}
		tableID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for _, c := range t.Columns {
			if _, err := tx.Exec(
				`INSERT INTO model_columns (table_id, name, data_type, source_name, is_hidden, is_calculated)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				tableID, c.Name, c.DataType, c.SourceName, boolInt(c.Hidden), boolInt(c.Calculated)); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package index

import (
	"database/sql"
	"time"

	"github.com/remodelcli/remodel/internal/model"
	"github.com/remodelcli/remodel/internal/sqlutil"
)

// ModelInfo is one indexed model.
type ModelInfo struct {
	Workspace string    `json:"workspace"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	IndexedAt time.Time `json:"indexed_at"`
}

// Models lists indexed models, optionally filtered to the named workspaces.
func (d *Database) Models(workspaces ...string) ([]ModelInfo, error) {
	query := `SELECT workspace, name, path, indexed_at FROM models`
	var args []any
	if len(workspaces) > 0 {
		ph, phArgs := sqlutil.InClauseArgs(workspaces)
		query += ` WHERE workspace IN (` + ph + `)`
		args = phArgs
	}
	query += ` ORDER BY workspace, name`

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (ModelInfo, error) {
		var m ModelInfo
		var at string
		if err := rows.Scan(&m.Workspace, &m.Name, &m.Path, &at); err != nil {
			return m, err
		}
		m.IndexedAt, _ = time.Parse(time.RFC3339, at)
		return m, nil
	})
}

// Tables lists the indexed tables of a model, with their columns attached.
func (d *Database) Tables(modelPath string) ([]model.Table, error) {
	rows, err := d.db.Query(
		`SELECT t.id, t.name, t.schema_name, t.file
		   FROM model_tables t JOIN models m ON m.id = t.model_id
		  WHERE m.path = ? ORDER BY t.name`, modelPath)
	if err != nil {
		return nil, err
	}
	type row struct {
		id    int64
		table model.Table
	}
	tableRows, err := sqlutil.ScanRows(rows, func(rows *sql.Rows) (row, error) {
		var r row
		err := rows.Scan(&r.id, &r.table.Name, &r.table.Schema, &r.table.File)
		return r, err
	})
	if err != nil {
		return nil, err
	}

	tables := make([]model.Table, 0, len(tableRows))
	for _, r := range tableRows {
		cols, err := d.columnsByTableID(r.id)
		if err != nil {
			return nil, err
		}
		r.table.Columns = cols
		tables = append(tables, r.table)
	}
	return tables, nil
}

// Columns lists the indexed columns of one table of a model.
func (d *Database) Columns(modelPath, tableName string) ([]model.Column, error) {
	var tableID int64
	err := d.db.QueryRow(
		`SELECT t.id FROM model_tables t JOIN models m ON m.id = t.model_id
		  WHERE m.path = ? AND t.name = ?`, modelPath, tableName).Scan(&tableID)
	if err != nil {
		return nil, err
	}
	return d.columnsByTableID(tableID)
}

func (d *Database) columnsByTableID(tableID int64) ([]model.Column, error) {
	rows, err := d.db.Query(
		`SELECT name, data_type, source_name, is_hidden, is_calculated
		   FROM model_columns WHERE table_id = ? ORDER BY id`, tableID)
	if err != nil {
		return nil, err
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (model.Column, error) {
		var c model.Column
		var hidden, calc int
		if err := rows.Scan(&c.Name, &c.DataType, &c.SourceName, &hidden, &calc); err != nil {
			return c, err
		}
		c.Hidden = hidden != 0
		c.Calculated = calc != 0
		return c, nil
	})
}

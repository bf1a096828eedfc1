// Package index maintains a SQLite catalog of every semantic model under an
// export root: workspaces, models, tables, columns. It is a read-only
// consumer of the same on-disk definition format the rename engine rewrites;
// the engine itself never opens the index, so a stale index can never affect
// a rename. The CLI rebuilds it with `rmdl reindex` and serves catalog
// listings from it when asked to.
package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Database is the SQLite index handle.
type Database struct {
	db *sql.DB
}

const schemaVersion = 1

// Open opens or creates the index database under <exportRoot>/.remodel/.
func Open(exportRoot string) (*Database, error) {
	dbDir := filepath.Join(exportRoot, ".remodel")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("create .remodel directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dbDir, "index.db"))
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database.
func (d *Database) Close() error { return d.db.Close() }

// DB exposes the underlying handle for advanced queries.
func (d *Database) DB() *sql.DB { return d.db }

func (d *Database) initialize() error {
	stmts := []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS models (
			id INTEGER PRIMARY KEY,
			workspace TEXT NOT NULL,
			name TEXT NOT NULL,
			path TEXT NOT NULL UNIQUE,
			indexed_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS model_tables (
			id INTEGER PRIMARY KEY,
			model_id INTEGER NOT NULL REFERENCES models(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			schema_name TEXT NOT NULL DEFAULT '',
			file TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS model_columns (
			id INTEGER PRIMARY KEY,
			table_id INTEGER NOT NULL REFERENCES model_tables(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			data_type TEXT NOT NULL DEFAULT 'string',
			source_name TEXT NOT NULL DEFAULT '',
			is_hidden INTEGER NOT NULL DEFAULT 0,
			is_calculated INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tables_model ON model_tables(model_id)`,
		`CREATE INDEX IF NOT EXISTS idx_columns_table ON model_columns(table_id)`,
	}
	for _, stmt := range stmts {
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("initialize index schema: %w", err)
		}
	}
	_, err := d.db.Exec(
		`INSERT INTO meta (key, value) VALUES ('schema_version', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		fmt.Sprint(schemaVersion))
	return err
}

// upsertModel inserts or refreshes a model row and clears its table rows so
// a reindex replaces rather than accumulates.
func upsertModel(tx *sql.Tx, workspace, name, path string) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		`INSERT INTO models (workspace, name, path, indexed_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET workspace = excluded.workspace,
			name = excluded.name, indexed_at = excluded.indexed_at`,
		workspace, name, path, now); err != nil {
		return 0, err
	}
	var id int64
	if err := tx.QueryRow(`SELECT id FROM models WHERE path = ?`, path).Scan(&id); err != nil {
		return 0, err
	}
	_, err := tx.Exec(`DELETE FROM model_tables WHERE model_id = ?`, id)
	return id, err
}

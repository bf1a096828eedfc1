package rename

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/remodelcli/remodel/internal/atomicfile"
	"github.com/remodelcli/remodel/internal/backup"
	"github.com/remodelcli/remodel/internal/model"
	"github.com/remodelcli/remodel/internal/report"
	"github.com/remodelcli/remodel/internal/rewrite"
)

// Engine runs rename transactions against one model tree at a time. It is
// synchronous and keeps no state between calls; every invocation is a pure
// function of the filesystem and its parameters. The caller owns exclusive
// access to the model folder for the duration of a batch.
type Engine struct {
	log     *zap.SugaredLogger
	backups *backup.Manager
	rebind  *report.Rebinder
}

// New returns an Engine logging through log (nil means no-op).
func New(log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{
		log:     log,
		backups: backup.NewManager(log),
		rebind:  report.NewRebinder(log),
	}
}

// SkipBackups disables the per-batch snapshot, for callers that already
// took one or explicitly opted out.
func (e *Engine) SkipBackups() {
	e.backups = nil
}

// findTableFile resolves the backing file of a table by display name. After
// a display-only rename the file keeps the backend name, so when <name>.tmdl
// does not exist the catalog is consulted for the file whose declaration
// carries the name.
func findTableFile(modelPath, name string) (string, error) {
	path := model.TableFile(modelPath, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	tables, err := model.ListTables(modelPath)
	if err != nil {
		return "", err
	}
	for _, t := range tables {
		if t.Name == name {
			return t.File, nil
		}
	}
	return "", os.ErrNotExist
}

// rewriteTables applies rules to every table file of the model, collecting
// per-file errors without aborting the loop. Returns how many files changed.
func (e *Engine) rewriteTables(modelPath string, rules []rewrite.Rule, res *Result) int {
	tablesDir := model.TablesDir(modelPath)
	entries, err := os.ReadDir(tablesDir)
	if err != nil {
		if !os.IsNotExist(err) {
			res.Errorf("read tables folder: %v", err)
		}
		return 0
	}
	changed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), model.TMDLExt) {
			continue
		}
		path := filepath.Join(tablesDir, entry.Name())
		c, err := rewrite.File(path, rules)
		if err != nil {
			res.Errorf("%s: %v", entry.Name(), err)
			continue
		}
		if c {
			changed++
		}
	}
	return changed
}

// rewriteRelationships applies rules to relationships.tmdl; a missing file
// is fine, relationships are optional.
func (e *Engine) rewriteRelationships(modelPath string, rules []rewrite.Rule, res *Result) {
	path := model.RelationshipsFile(modelPath)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}
	if _, err := rewrite.File(path, rules); err != nil {
		res.Errorf("relationships.tmdl: %v", err)
	}
}

// rewriteRoles applies rules to every role file; a missing roles folder is
// fine, roles are optional.
func (e *Engine) rewriteRoles(modelPath string, rules []rewrite.Rule, res *Result) {
	rolesDir := model.RolesDir(modelPath)
	entries, err := os.ReadDir(rolesDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), model.TMDLExt) {
			continue
		}
		path := filepath.Join(rolesDir, entry.Name())
		if _, err := rewrite.File(path, rules); err != nil {
			res.Errorf("roles/%s: %v", entry.Name(), err)
		}
	}
}

// rewriteVisuals applies rules to every visual definition file of every
// sibling report package. A malformed or unreadable file is one error line;
// sibling files still get rewritten.
func (e *Engine) rewriteVisuals(modelPath string, rules []rewrite.Rule, res *Result) int {
	reports, err := model.ReportDirs(modelPath)
	if err != nil {
		res.Errorf("find report folders: %v", err)
		return 0
	}
	changed := 0
	for _, reportDir := range reports {
		for _, file := range report.VisualFiles(reportDir) {
			c, err := rewriteVisualFile(file, rules)
			if err != nil {
				rel, relErr := filepath.Rel(filepath.Dir(modelPath), file)
				if relErr != nil {
					rel = file
				}
				res.Errorf("%s: %v", filepath.ToSlash(rel), err)
				continue
			}
			if c {
				changed++
				e.log.Debugw("visual references updated", "file", file)
			}
		}
	}
	return changed
}

// rewriteVisualFile rewrites one visual definition file. The rules operate
// on raw text, so corruption would otherwise pass through silently; a
// validity check up front turns a broken file into a reported error instead.
func rewriteVisualFile(path string, rules []rewrite.Rule) (bool, error) {
	text, err := model.ReadText(path)
	if err != nil {
		return false, err
	}
	if !json.Valid([]byte(text)) {
		return false, errors.New("not valid JSON")
	}
	out, changed := rewrite.Apply(text, rules)
	if !changed {
		return false, nil
	}
	if err := atomicfile.WriteFile(path, []byte(out), 0); err != nil {
		return false, err
	}
	return true, nil
}

package rename

import (
	"os"
	"strings"

	"github.com/remodelcli/remodel/internal/atomicfile"
	"github.com/remodelcli/remodel/internal/model"
	"github.com/remodelcli/remodel/internal/rewrite"
)

// Table renames one table and propagates the new name through every
// referencing dialect. Each sub-step runs independently; a failure in one
// is recorded and the rest still execute. The transaction does not check
// whether the new name collides with an existing table, that precondition
// belongs to the caller.
func (e *Engine) Table(modelPath string, r TableRename, mode Mode) Result {
	var res Result

	oldFile, err := findTableFile(modelPath, r.Old)
	if err != nil {
		res.Errorf("%s: table file not found", r.Old)
		return res
	}
	text, err := model.ReadText(oldFile)
	if err != nil {
		res.Errorf("%s: %v", r.Old, err)
		return res
	}

	e.log.Infow("renaming table",
		"model", model.Name(modelPath), "old", r.Old, "new", r.New, "mode", mode.String())

	// 1. The table's own declaration, written before any file rename so a
	// failed rename still leaves a consistent declaration.
	out, _ := rewrite.Apply(text, rewrite.TableDeclaration(r.Old, r.New))
	if err := atomicfile.WriteFile(oldFile, []byte(out), 0); err != nil {
		res.Errorf("%s: write declaration: %v", r.Old, err)
		return res
	}
	res.Success++

	// 2. Backing file follows the backend name, so it moves only in full
	// mode. Case-only renames go through an intermediate name: a direct
	// rename can silently no-op on case-insensitive filesystems.
	if mode.RenameBackend() && r.Old != r.New {
		newFile := model.TableFile(modelPath, r.New)
		if strings.EqualFold(r.Old, r.New) {
			tmpFile := model.TableFile(modelPath, r.New+"_rename_tmp")
			if err := os.Rename(oldFile, tmpFile); err != nil {
				res.Errorf("%s: rename backing file: %v", r.Old, err)
			} else if err := os.Rename(tmpFile, newFile); err != nil {
				res.Errorf("%s: rename backing file: %v", r.Old, err)
			}
		} else if err := os.Rename(oldFile, newFile); err != nil {
			res.Errorf("%s: rename backing file: %v", r.Old, err)
		}
	}

	// 3. model.tmdl query order and ref lines.
	modelFile := model.ModelFile(modelPath)
	if _, err := os.Stat(modelFile); err == nil {
		if _, err := rewrite.File(modelFile, rewrite.ModelRefs(r.Old, r.New)); err != nil {
			res.Errorf("model.tmdl: %v", err)
		}
	}

	// 4. Relationship and role references.
	e.rewriteRelationships(modelPath, rewrite.TableRelationshipRefs(r.Old, r.New), &res)
	e.rewriteRoles(modelPath, rewrite.RoleRefs(r.Old, r.New), &res)

	// 5. Report visuals.
	e.rewriteVisuals(modelPath, rewrite.TableVisualRefs(r.Old, r.New), &res)

	// 6. Formula and query references across every table file, own file
	// included (its measures and source query carry the name too).
	rules := rewrite.TableBracketRefs(r.Old, r.New)
	rules = append(rules, rewrite.TableBareRefs(r.Old, r.New)...)
	if mode.RenameBackend() {
		if r.SchemaChanged() {
			rules = append(rules, rewrite.SchemaBinding(r.OldSchema, r.NewSchema)...)
		}
		rules = append(rules, rewrite.TableSourceBinding(r.Old, r.New)...)
	}
	e.rewriteTables(modelPath, rules, &res)

	return res
}

// Tables is the bulk batch driver for table renames: exactly one snapshot
// and one rebind pass for the whole batch, then one transaction per entry.
// No-op entries are skipped. Nothing panics out of here; an unusable model
// path is a single top-level error result.
func (e *Engine) Tables(modelPath string, renames []TableRename, mode Mode) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res.Errorf("internal error: %v", p)
		}
	}()

	if st, err := os.Stat(modelPath); err != nil || !st.IsDir() {
		res.Errorf("model path not found: %s", modelPath)
		return res
	}

	e.prepare(modelPath, "table_rename", &res)

	for _, r := range renames {
		if r.IsNoop() {
			continue
		}
		res.Merge(e.Table(modelPath, r, mode))
	}
	return res
}

// prepare runs the per-batch steps: snapshot, then rebinding every paired
// report to the local model copy. Both failures are warnings, not errors;
// blocking a rename on a failed backup would be worse than proceeding
// without one.
func (e *Engine) prepare(modelPath, label string, res *Result) {
	if e.backups != nil {
		backupPath, err := e.backups.Snapshot(modelPath, label)
		if err != nil {
			res.Warnf("backup failed: %v (continuing anyway)", err)
			e.log.Warnw("backup failed", "model", modelPath, "error", err)
		} else {
			e.log.Infow("backup created", "path", backupPath)
		}
	}

	okReports, failedReports := e.rebind.RebindAllToLocal(modelPath)
	if okReports > 0 {
		e.log.Infow("reports bound to local model", "count", okReports)
	}
	if failedReports > 0 {
		res.Warnf("could not rebind %d report connection(s) to local", failedReports)
	}
}

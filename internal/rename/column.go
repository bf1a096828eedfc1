package rename

import (
	"os"

	"github.com/remodelcli/remodel/internal/model"
	"github.com/remodelcli/remodel/internal/rewrite"
)

// Column renames one column and propagates the new name through the owning
// table file, every other table's formulas, the relationships file, and
// (when requested) report visuals. Sub-steps run independently; failures
// accumulate without aborting the rest.
func (e *Engine) Column(modelPath string, r ColumnRename, mode Mode) Result {
	var res Result

	tableFile, err := findTableFile(modelPath, r.Table)
	if err != nil {
		res.Errorf("%s: table file not found", r.Table)
		return res
	}

	e.log.Infow("renaming column",
		"model", model.Name(modelPath), "table", r.Table,
		"old", r.Old, "new", r.New, "mode", mode.String())

	// 1. Owning file: declaration plus unqualified bracket references,
	// which always resolve to this table inside its own file. The physical
	// sourceColumn binding moves only in full mode.
	rules := rewrite.ColumnDeclaration(r.Old, r.New)
	rules = append(rules, rewrite.BareBracketRefs(r.Old, r.New)...)
	if mode.RenameBackend() {
		rules = append(rules, rewrite.SourceColumn(r.Old, r.New)...)
	}
	if _, err := rewrite.File(tableFile, rules); err != nil {
		res.Errorf("%s: %v", r.Table, err)
	} else {
		res.Success++
	}

	// 2. Qualified references in every table's formulas.
	e.rewriteTables(modelPath, rewrite.ColumnBracketRefs(r.Table, r.Old, r.New), &res)

	// 3. Relationship endpoints.
	e.rewriteRelationships(modelPath, rewrite.ColumnRelationshipRefs(r.Table, r.Old, r.New), &res)

	// 4. Report visuals, when in scope for this rename.
	if r.UpdateVisuals {
		e.rewriteVisuals(modelPath, rewrite.ColumnVisualRefs(r.Table, r.Old, r.New), &res)
	}

	return res
}

// Columns is the bulk batch driver for column renames: one snapshot and one
// rebind pass per batch, then one transaction per entry, skipping no-ops.
func (e *Engine) Columns(modelPath string, renames []ColumnRename, mode Mode) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res.Errorf("internal error: %v", p)
		}
	}()

	if st, err := os.Stat(modelPath); err != nil || !st.IsDir() {
		res.Errorf("model path not found: %s", modelPath)
		return res
	}

	e.prepare(modelPath, "column_rename", &res)

	for _, r := range renames {
		if r.IsNoop() {
			continue
		}
		res.Merge(e.Column(modelPath, r, mode))
	}
	return res
}

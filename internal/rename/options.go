// Package rename implements the rename transaction and the bulk batch
// driver: given a rename mapping, it rewrites the entity's own declaration
// and propagates the new identifier through every referencing dialect,
// committing only after the batch has taken a snapshot.
package rename

// Mode selects how much of an entity a rename touches.
type Mode int

const (
	// ModeDisplayOnly changes the user-facing identifier and its formula,
	// relationship, role, and visual references, leaving the backing file
	// and the physical query binding untouched.
	ModeDisplayOnly Mode = iota
	// ModeFull additionally renames the backing file and rewrites the
	// physical query binding, including the schema.
	ModeFull
)

func (m Mode) String() string {
	if m == ModeFull {
		return "full"
	}
	return "display-only"
}

// RenameBackend reports whether the physical binding is in scope.
func (m Mode) RenameBackend() bool { return m == ModeFull }

// TableRename is one table rename request. Schemas matter only in ModeFull;
// empty schema fields mean "leave the schema alone".
type TableRename struct {
	Old       string `json:"old" yaml:"old"`
	New       string `json:"new" yaml:"new"`
	OldSchema string `json:"old_schema,omitempty" yaml:"old_schema,omitempty"`
	NewSchema string `json:"new_schema,omitempty" yaml:"new_schema,omitempty"`
}

// IsNoop reports whether the request changes nothing and should be skipped.
func (r TableRename) IsNoop() bool {
	return r.Old == r.New && r.OldSchema == r.NewSchema
}

// SchemaChanged reports whether a schema move was requested.
func (r TableRename) SchemaChanged() bool {
	return r.OldSchema != "" && r.NewSchema != "" && r.OldSchema != r.NewSchema
}

// ColumnRename is one column rename request.
type ColumnRename struct {
	Table string `json:"table" yaml:"table"`
	Old   string `json:"old" yaml:"old"`
	New   string `json:"new" yaml:"new"`

	// UpdateVisuals controls whether report visual references are
	// rewritten along with the model.
	UpdateVisuals bool `json:"update_visuals" yaml:"-"`
}

// IsNoop reports whether the request changes nothing.
func (r ColumnRename) IsNoop() bool { return r.Old == r.New }

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/remodelcli/remodel/internal/rename"
)

var (
	renameModeFlag  string
	renameNoBackup  bool
	renameOldSchema string
	renameNewSchema string
	renameNoVisuals bool
	bulkMappingFile string
)

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Rename tables and columns, keeping references consistent",
}

var renameTableCmd = &cobra.Command{
	Use:   "table <model> <old> <new>",
	Short: "Rename a table across the model and its reports",
	Long: `Rename a table and propagate the new name through TMDL declarations,
DAX formulas, relationships, roles, and report visuals.

In display-only mode (the default) the physical query binding and the
backing TMDL file keep their names. With --mode full the file is renamed
and the power query Item/Schema binding is rewritten too.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		modelPath, err := resolveModelPath(args[0])
		if err != nil {
			return handleError(ErrModelNotFound, err, "")
		}
		mode, err := parseMode(renameModeFlag)
		if err != nil {
			return handleError(ErrInvalidMode, err, "")
		}

		r := rename.TableRename{
			Old:       args[1],
			New:       args[2],
			OldSchema: renameOldSchema,
			NewSchema: renameNewSchema,
		}
		res := newEngine().Tables(modelPath, []rename.TableRename{r}, mode)
		return printRenameResult(res, fmt.Sprintf("rename table %s -> %s", args[1], args[2]))
	},
}

var renameColumnCmd = &cobra.Command{
	Use:   "column <model> <table> <old> <new>",
	Short: "Rename a column across the model and its reports",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		modelPath, err := resolveModelPath(args[0])
		if err != nil {
			return handleError(ErrModelNotFound, err, "")
		}
		mode, err := parseMode(renameModeFlag)
		if err != nil {
			return handleError(ErrInvalidMode, err, "")
		}

		r := rename.ColumnRename{
			Table:         args[1],
			Old:           args[2],
			New:           args[3],
			UpdateVisuals: !renameNoVisuals && getRootConfig().ShouldUpdateVisuals(),
		}
		res := newEngine().Columns(modelPath, []rename.ColumnRename{r}, mode)
		return printRenameResult(res, fmt.Sprintf("rename column %s[%s] -> %s", args[1], args[2], args[3]))
	},
}

// bulkMapping is the YAML schema for 'rename bulk --mapping'.
type bulkMapping struct {
	Mode    string                `yaml:"mode,omitempty"`
	Tables  []rename.TableRename  `yaml:"tables,omitempty"`
	Columns []rename.ColumnRename `yaml:"columns,omitempty"`
}

var renameBulkCmd = &cobra.Command{
	Use:   "bulk <model>",
	Short: "Apply a batch of renames from a YAML mapping file",
	Long: `Apply a batch of table and column renames in one transaction: a single
snapshot and rebind pass, then every entry in order (tables first, so
column entries can use the new table names).

Mapping file format:

  mode: full            # optional, overrides --mode
  tables:
    - old: Sales
      new: Fact Sales
      old_schema: dbo   # optional schema move, full mode only
      new_schema: gold
  columns:
    - table: Fact Sales
      old: Amount
      new: Sales Amount`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modelPath, err := resolveModelPath(args[0])
		if err != nil {
			return handleError(ErrModelNotFound, err, "")
		}

		data, err := os.ReadFile(bulkMappingFile)
		if err != nil {
			return handleError(ErrMappingNotFound, err, "")
		}
		var mapping bulkMapping
		if err := yaml.Unmarshal(data, &mapping); err != nil {
			return handleError(ErrMappingInvalid, fmt.Errorf("parse %s: %w", bulkMappingFile, err), "")
		}
		if len(mapping.Tables) == 0 && len(mapping.Columns) == 0 {
			return handleErrorMsg(ErrMappingInvalid, "mapping file has no tables or columns entries", "")
		}

		modeFlag := renameModeFlag
		if mapping.Mode != "" {
			modeFlag = mapping.Mode
		}
		mode, err := parseMode(modeFlag)
		if err != nil {
			return handleError(ErrInvalidMode, err, "")
		}

		updateVisuals := !renameNoVisuals && getRootConfig().ShouldUpdateVisuals()
		for i := range mapping.Columns {
			mapping.Columns[i].UpdateVisuals = updateVisuals
		}

		eng := newEngine()
		res := eng.Tables(modelPath, mapping.Tables, mode)

		// The snapshot was already taken by the table pass; don't take a
		// second one for the column pass.
		eng.SkipBackups()
		res.Merge(eng.Columns(modelPath, mapping.Columns, mode))

		return printRenameResult(res, fmt.Sprintf("bulk rename (%d table(s), %d column(s))",
			len(mapping.Tables), len(mapping.Columns)))
	},
}

// newEngine builds a rename engine honoring the backup flags and config.
func newEngine() *rename.Engine {
	eng := rename.New(log)
	if renameNoBackup || !getRootConfig().ShouldBackup() {
		eng.SkipBackups()
	}
	return eng
}

func init() {
	for _, c := range []*cobra.Command{renameTableCmd, renameColumnCmd, renameBulkCmd} {
		c.Flags().StringVarP(&renameModeFlag, "mode", "m", "", "Rename mode: display-only or full (default from remodel.yaml, else display-only)")
		c.Flags().BoolVar(&renameNoBackup, "no-backup", false, "Skip the pre-rename snapshot")
	}
	renameTableCmd.Flags().StringVar(&renameOldSchema, "old-schema", "", "Current source schema (full mode)")
	renameTableCmd.Flags().StringVar(&renameNewSchema, "new-schema", "", "New source schema (full mode)")
	renameColumnCmd.Flags().BoolVar(&renameNoVisuals, "no-visuals", false, "Leave report visual references untouched")
	renameBulkCmd.Flags().BoolVar(&renameNoVisuals, "no-visuals", false, "Leave report visual references untouched")
	renameBulkCmd.Flags().StringVar(&bulkMappingFile, "mapping", "", "Path to the YAML mapping file (required)")
	_ = renameBulkCmd.MarkFlagRequired("mapping")

	renameCmd.AddCommand(renameTableCmd)
	renameCmd.AddCommand(renameColumnCmd)
	renameCmd.AddCommand(renameBulkCmd)
	rootCmd.AddCommand(renameCmd)
}

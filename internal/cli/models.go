package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remodelcli/remodel/internal/index"
	"github.com/remodelcli/remodel/internal/ui"
)

var modelsWorkspace []string

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List indexed models in the export root",
	Long: `List the semantic models recorded in the export root's index.

The index is built with 'rmdl reindex' and lives in .remodel/index.db
under the export root.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := index.Open(getExportRoot())
		if err != nil {
			return handleError(ErrDatabaseError, err, "run 'rmdl reindex' first")
		}
		defer db.Close()

		models, err := db.Models(modelsWorkspace...)
		if err != nil {
			return handleError(ErrDatabaseError, err, "run 'rmdl reindex' first")
		}

		if isJSONOutput() {
			outputSuccess(models, &Meta{Count: len(models)})
			return nil
		}

		if len(models) == 0 {
			ui.Info("no models indexed; run 'rmdl reindex'")
			return nil
		}
		for _, m := range models {
			fmt.Printf("%s%s\n", ui.Accent.Render(m.Name), ui.Muted.Render("  "+m.Workspace))
		}
		return nil
	},
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the model index for the export root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := index.Open(getExportRoot())
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer db.Close()

		indexed, errs := db.Reindex(getExportRoot())

		if isJSONOutput() {
			data := map[string]interface{}{"indexed": indexed, "errors": errs}
			if len(errs) > 0 {
				outputSuccessWithWarnings(data, errs, &Meta{Count: indexed})
			} else {
				outputSuccess(data, &Meta{Count: indexed})
			}
			return nil
		}

		for _, e := range errs {
			ui.Warning(e)
		}
		ui.Successf("indexed %d model(s)", indexed)
		return nil
	},
}

func init() {
	modelsCmd.Flags().StringSliceVarP(&modelsWorkspace, "workspace", "w", nil, "Filter by workspace name (repeatable)")
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(reindexCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remodelcli/remodel/internal/model"
	"github.com/remodelcli/remodel/internal/ui"
)

var tablesCmd = &cobra.Command{
	Use:   "tables <model>",
	Short: "List the tables of a model",
	Long: `List the tables of a semantic model by scanning its TMDL table files.

The model argument is a path to a Name.SemanticModel folder, or a bare
model name resolved against the export root's workspaces. Auto-generated
date tables are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modelPath, err := resolveModelPath(args[0])
		if err != nil {
			return handleError(ErrModelNotFound, err, "run 'rmdl models' to list indexed models")
		}

		tables, err := model.ListTables(modelPath)
		if err != nil {
			return handleError(ErrModelNotFound, err, "")
		}

		if isJSONOutput() {
			outputSuccess(tables, &Meta{Count: len(tables)})
			return nil
		}

		fmt.Printf("%s (%d tables)\n\n", ui.Bold.Render(model.Name(modelPath)), len(tables))
		for _, t := range tables {
			line := "  " + ui.Accent.Render(t.Name)
			if t.Schema != "" {
				line += ui.Muted.Render(fmt.Sprintf("  [%s]", t.Schema))
			}
			line += ui.Muted.Render(fmt.Sprintf("  %d columns", len(t.Columns)))
			fmt.Println(line)
		}
		return nil
	},
}

var columnsCmd = &cobra.Command{
	Use:   "columns <model> <table>",
	Short: "List the columns of a table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		modelPath, err := resolveModelPath(args[0])
		if err != nil {
			return handleError(ErrModelNotFound, err, "")
		}

		columns, err := model.ListColumns(modelPath, args[1])
		if err != nil {
			return handleError(ErrTableNotFound, err, "run 'rmdl tables' to list tables")
		}

		if isJSONOutput() {
			outputSuccess(columns, &Meta{Count: len(columns)})
			return nil
		}

		fmt.Printf("%s (%d columns)\n\n", ui.Bold.Render(args[1]), len(columns))
		for _, c := range columns {
			line := "  " + ui.Accent.Render(c.Name)
			if c.DataType != "" {
				line += ui.Muted.Render("  " + c.DataType)
			}
			if c.Calculated {
				line += ui.Muted.Render("  calculated")
			} else if c.SourceName != "" && c.SourceName != c.Name {
				line += ui.Muted.Render("  <- " + c.SourceName)
			}
			if c.Hidden {
				line += ui.Muted.Render("  hidden")
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(columnsCmd)
}

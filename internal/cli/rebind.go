package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/remodelcli/remodel/internal/model"
	"github.com/remodelcli/remodel/internal/report"
	"github.com/remodelcli/remodel/internal/ui"
)

var (
	rebindWorkspaceID string
	rebindModelID     string
	rebindBackupPath  string
)

var rebindCmd = &cobra.Command{
	Use:   "rebind",
	Short: "Manage report-to-model connections",
	Long: `Manage how sibling report folders are bound to a semantic model.

Reports reference a model either locally, by relative path to the
.SemanticModel folder, or remotely, by connection string to a published
copy. Renames need the local binding; 'rebind remote' points reports
back at a published model afterwards.`,
}

var rebindLocalCmd = &cobra.Command{
	Use:   "local <model>",
	Short: "Bind every referencing report to the local model folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modelPath, err := resolveModelPath(args[0])
		if err != nil {
			return handleError(ErrModelNotFound, err, "")
		}

		success, failed := report.NewRebinder(log).RebindAllToLocal(modelPath)

		if isJSONOutput() {
			data := map[string]int{"rebound": success, "failed": failed}
			if failed > 0 {
				outputError(ErrRebindFailed, fmt.Sprintf("%d report(s) could not be rebound", failed), data, "")
			} else {
				outputSuccess(data, &Meta{Count: success})
			}
			return nil
		}

		if failed > 0 {
			return fmt.Errorf("%d report(s) could not be rebound", failed)
		}
		ui.Successf("%d report(s) bound to local model", success)
		return nil
	},
}

var rebindRemoteCmd = &cobra.Command{
	Use:   "remote <model>",
	Short: "Bind the paired report to a published model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modelPath, err := resolveModelPath(args[0])
		if err != nil {
			return handleError(ErrModelNotFound, err, "")
		}

		reportDir := model.PairedReportDir(modelPath)
		rb := report.NewRebinder(log)

		if rebindBackupPath != "" {
			if err := rb.RestoreConnection(reportDir, rebindBackupPath); err != nil {
				return handleError(ErrRebindFailed, err, "")
			}
		} else {
			if rebindWorkspaceID == "" || rebindModelID == "" {
				return handleErrorMsg(ErrInvalidInput,
					"remote binding needs --workspace-id and --model-id, or --from-backup", "")
			}
			if err := rb.SetRemote(reportDir, rebindWorkspaceID, rebindModelID, model.Name(modelPath)); err != nil {
				return handleError(ErrRebindFailed, err, "")
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{"report": reportDir, "connection": report.ConnectionType(reportDir)}, nil)
			return nil
		}
		ui.Successf("%s bound to remote model", filepath.Base(reportDir))
		return nil
	},
}

var rebindStatusCmd = &cobra.Command{
	Use:   "status <model>",
	Short: "Show how each sibling report is bound",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modelPath, err := resolveModelPath(args[0])
		if err != nil {
			return handleError(ErrModelNotFound, err, "")
		}

		reports, err := model.ReportDirs(modelPath)
		if err != nil {
			return handleError(ErrReportNotFound, err, "")
		}

		type status struct {
			Report     string `json:"report"`
			Connection string `json:"connection"`
		}
		statuses := make([]status, 0, len(reports))
		for _, dir := range reports {
			conn := report.ConnectionType(dir)
			if conn == "" {
				conn = "none"
			}
			statuses = append(statuses, status{Report: filepath.Base(dir), Connection: conn})
		}

		if isJSONOutput() {
			outputSuccess(statuses, &Meta{Count: len(statuses)})
			return nil
		}

		for _, s := range statuses {
			fmt.Printf("%s%s\n", ui.Accent.Render(s.Report), ui.Muted.Render("  "+s.Connection))
		}
		return nil
	},
}

func init() {
	rebindRemoteCmd.Flags().StringVar(&rebindWorkspaceID, "workspace-id", "", "Published workspace identifier")
	rebindRemoteCmd.Flags().StringVar(&rebindModelID, "model-id", "", "Published semantic model identifier")
	rebindRemoteCmd.Flags().StringVar(&rebindBackupPath, "from-backup", "", "Restore the connection from a snapshot folder instead")

	rebindCmd.AddCommand(rebindLocalCmd)
	rebindCmd.AddCommand(rebindRemoteCmd)
	rebindCmd.AddCommand(rebindStatusCmd)
	rootCmd.AddCommand(rebindCmd)
}

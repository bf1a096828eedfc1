package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/remodelcli/remodel/internal/backup"
	"github.com/remodelcli/remodel/internal/ui"
)

var (
	backupLabel     string
	restoreNoModel  bool
	restoreNoReport bool
	restoreLatest   string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot models and restore from snapshots",
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots under the export root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backups, err := backup.Scan(getExportRoot())
		if err != nil {
			return handleError(ErrBackupNotFound, err, "")
		}

		if isJSONOutput() {
			outputSuccess(backups, &Meta{Count: len(backups)})
			return nil
		}

		if len(backups) == 0 {
			ui.Info("no backups found")
			return nil
		}
		for _, b := range backups {
			contents := make([]string, 0, 2)
			if b.HasModel {
				contents = append(contents, "model")
			}
			if b.HasReport {
				contents = append(contents, "report")
			}
			fmt.Printf("%s%s\n",
				ui.Accent.Render(fmt.Sprintf("%s/%s", b.Workspace, b.ModelName)),
				ui.Muted.Render(fmt.Sprintf("  %s  %s  %s  %.1f MB",
					b.Operation,
					b.Taken.Format("2006-01-02 15:04:05"),
					strings.Join(contents, "+"),
					float64(b.SizeBytes)/(1024*1024))))
		}
		return nil
	},
}

var backupCreateCmd = &cobra.Command{
	Use:   "create <model>",
	Short: "Snapshot a model and its paired report now",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modelPath, err := resolveModelPath(args[0])
		if err != nil {
			return handleError(ErrModelNotFound, err, "")
		}

		path, err := backup.NewManager(log).Snapshot(modelPath, backupLabel)
		if err != nil {
			return handleError(ErrRestoreFailed, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{"path": path}, nil)
			return nil
		}
		ui.Successf("backup created: %s", path)
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <backup-path> <model>",
	Short: "Restore a model (and paired report) from a snapshot",
	Long: `Restore a model folder, and its paired report folder when the snapshot
holds one, from a snapshot directory.

The backup-path argument is a snapshot folder as printed by
'rmdl backup list'. Pass --latest <operation> instead to pick the
newest snapshot of that operation for the model.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var backupPath, modelArg string
		if restoreLatest != "" {
			if len(args) != 1 {
				return handleErrorMsg(ErrInvalidInput, "--latest takes only the model argument", "")
			}
			modelArg = args[0]
		} else {
			if len(args) != 2 {
				return handleErrorMsg(ErrInvalidInput, "expected <backup-path> <model>", "")
			}
			backupPath, modelArg = args[0], args[1]
		}

		modelPath, err := resolveModelPath(modelArg)
		if err != nil {
			return handleError(ErrModelNotFound, err, "")
		}

		if restoreLatest != "" {
			info, err := backup.Latest(modelPath, restoreLatest)
			if err != nil {
				return handleError(ErrBackupNotFound, err, "run 'rmdl backup list'")
			}
			if info == nil {
				return handleErrorMsg(ErrBackupNotFound,
					fmt.Sprintf("no %q snapshot found for %s", restoreLatest, modelArg), "run 'rmdl backup list'")
			}
			backupPath = info.Path
		}

		if st, err := os.Stat(backupPath); err != nil || !st.IsDir() {
			return handleErrorMsg(ErrBackupNotFound,
				fmt.Sprintf("backup not found: %s", backupPath), "run 'rmdl backup list'")
		}

		targetDir := filepath.Dir(modelPath)
		success, failed, messages := backup.NewManager(log).Restore(
			backupPath, targetDir, !restoreNoModel, !restoreNoReport)

		if isJSONOutput() {
			data := map[string]interface{}{
				"restored": success,
				"failed":   failed,
				"messages": messages,
			}
			if failed > 0 {
				outputError(ErrRestoreFailed, fmt.Sprintf("%d restore step(s) failed", failed), data, "")
			} else {
				outputSuccess(data, &Meta{Count: success})
			}
			return nil
		}

		for _, m := range messages {
			ui.Info(m)
		}
		if failed > 0 {
			return fmt.Errorf("%d restore step(s) failed", failed)
		}
		ui.Successf("restored %d folder(s) from %s", success, backupPath)
		return nil
	},
}

func init() {
	backupCreateCmd.Flags().StringVar(&backupLabel, "label", "manual", "Operation label recorded in the snapshot folder name")
	backupRestoreCmd.Flags().BoolVar(&restoreNoModel, "no-model", false, "Skip restoring the model folder")
	backupRestoreCmd.Flags().BoolVar(&restoreNoReport, "no-report", false, "Skip restoring the report folder")
	backupRestoreCmd.Flags().StringVar(&restoreLatest, "latest", "", "Restore the newest snapshot with this operation label")

	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}

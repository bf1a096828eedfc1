// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/remodelcli/remodel/internal/config"
	"github.com/remodelcli/remodel/internal/logging"
	"github.com/remodelcli/remodel/internal/ui"
)

var (
	// Global flags
	rootName       string // Named export root from config
	exportRootFlag string // Explicit path
	verbose        bool

	// Resolved values
	resolvedExportRoot string
	cfg                *config.Config
	rootCfg            *config.RootConfig
	log                *zap.SugaredLogger = logging.Nop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rmdl",
	Short: "remodel - rename engine for folder-based semantic models",
	Long: `remodel renames tables and columns in folder-based semantic model exports
and keeps every reference consistent: TMDL declarations, DAX formulas,
power query bindings, relationships, roles, and report visuals.

Models are plain folders on disk (Name.SemanticModel with TMDL files,
sibling Name.Report folders with visual JSON); remodel never talks to a
service.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			log, err = logging.New(true)
			if err != nil {
				return err
			}
		}

		// Skip export root resolution for commands that don't need one.
		switch cmd.Name() {
		case "version", "docs", "completion", "help", "config":
			return nil
		}
		if cmd.Parent() != nil {
			switch cmd.Parent().Name() {
			case "completion", "docs", "config":
				return nil
			}
		}

		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		// Resolve export root: explicit path > named root > default > cwd.
		if exportRootFlag != "" {
			resolvedExportRoot = exportRootFlag
		} else if rootName != "" {
			resolvedExportRoot, err = cfg.GetRootPath(rootName)
			if err != nil {
				return fmt.Errorf("export root '%s' not found in config", rootName)
			}
		} else if path, pathErr := cfg.GetRootPath(""); pathErr == nil {
			resolvedExportRoot = path
		} else {
			resolvedExportRoot, err = os.Getwd()
			if err != nil {
				return err
			}
		}

		if _, err := os.Stat(resolvedExportRoot); os.IsNotExist(err) {
			return fmt.Errorf("export root not found: %s", resolvedExportRoot)
		}

		rootCfg, err = config.LoadRootConfig(resolvedExportRoot)
		if err != nil {
			return err
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootName, "root", "r", "", "Named export root from config")
	rootCmd.PersistentFlags().StringVar(&exportRootFlag, "export-root", "", "Explicit path to export root directory")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging to stderr")
}

// getExportRoot returns the resolved export root path.
func getExportRoot() string {
	return resolvedExportRoot
}

// getRootConfig returns the per-export-root settings, never nil.
func getRootConfig() *config.RootConfig {
	if rootCfg == nil {
		return &config.RootConfig{}
	}
	return rootCfg
}

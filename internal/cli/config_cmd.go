package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/remodelcli/remodel/internal/config"
)

func runConfigShow(cmd *cobra.Command, args []string) error {
	configPath := config.DefaultPath()
	_, statErr := os.Stat(configPath)
	exists := statErr == nil

	loaded, err := config.Load()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]any{
			"config_path":  configPath,
			"exists":       exists,
			"default_root": loaded.DefaultRoot,
			"roots":        loaded.ListRoots(),
			"ui": map[string]any{
				"accent": loaded.UI.Accent,
			},
		}, nil)
		return nil
	}

	if !exists {
		fmt.Printf("Config file does not exist: %s\n", configPath)
		fmt.Println("Run 'rmdl config init' to create it.")
		return nil
	}

	fmt.Printf("config: %s\n", configPath)
	if loaded.DefaultRoot != "" {
		fmt.Printf("default_root: %s\n", loaded.DefaultRoot)
	}
	if loaded.UI.Accent != "" {
		fmt.Printf("ui.accent: %s\n", loaded.UI.Accent)
	}
	printRoots(loaded.ListRoots())
	return nil
}

func printRoots(roots map[string]string) {
	if len(roots) == 0 {
		fmt.Println("roots: (none)")
		return
	}
	names := make([]string, 0, len(roots))
	for name := range roots {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("roots:")
	for _, name := range names {
		fmt.Printf("  %s = %s\n", name, roots[name])
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global remodel config.toml settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default global config.toml if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, statErr := os.Stat(config.DefaultPath())
		existed := statErr == nil

		createdPath, err := config.CreateDefault()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{
				"config_path": createdPath,
				"created":     !existed,
			}, nil)
			return nil
		}
		if existed {
			fmt.Printf("Config already exists: %s\n", createdPath)
		} else {
			fmt.Printf("Created config: %s\n", createdPath)
		}
		return nil
	},
}

var configRootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "List configured export roots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if isJSONOutput() {
			outputSuccess(loaded.ListRoots(), &Meta{Count: len(loaded.Roots)})
			return nil
		}
		printRoots(loaded.ListRoots())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configRootsCmd)
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current global config.toml values",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})
	rootCmd.AddCommand(configCmd)
}

package cli

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	builtindocs "github.com/remodelcli/remodel/docs"
	"github.com/remodelcli/remodel/internal/ui"
)

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Read the bundled documentation",
	Long: `Read the Markdown documentation bundled with the binary.

Without arguments, lists the available topics. With a topic name,
renders it for the terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := docsTopics()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			if isJSONOutput() {
				outputSuccess(topics, &Meta{Count: len(topics)})
				return nil
			}
			fmt.Println(ui.Bold.Render("Topics"))
			for _, t := range topics {
				fmt.Printf("  %s\n", ui.Accent.Render(t))
			}
			fmt.Println(ui.Muted.Render("\nrmdl docs <topic>"))
			return nil
		}

		topic := strings.TrimSuffix(args[0], ".md")
		content, err := fs.ReadFile(builtindocs.FS, path.Join("guide", topic+".md"))
		if err != nil {
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("unknown topic '%s' (available: %s)", topic, strings.Join(topics, ", ")), "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{"topic": topic, "content": string(content)}, nil)
			return nil
		}

		display := ui.NewDisplayContext()
		if !display.IsTTY {
			fmt.Print(string(content))
			return nil
		}
		rendered, err := ui.RenderMarkdown(string(content), display.TermWidth)
		if err != nil {
			fmt.Print(string(content))
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func docsTopics() ([]string, error) {
	entries, err := fs.ReadDir(builtindocs.FS, "guide")
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		topics = append(topics, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(topics)
	return topics, nil
}

func init() {
	rootCmd.AddCommand(docsCmd)
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/remodelcli/remodel/internal/model"
	"github.com/remodelcli/remodel/internal/rename"
	"github.com/remodelcli/remodel/internal/ui"
)

// resolveModelPath turns a model argument into an absolute .SemanticModel
// folder path. The argument is either a path to the folder, or a bare model
// name looked up across the workspaces of the export root.
func resolveModelPath(arg string) (string, error) {
	candidates := []string{arg}
	if !strings.HasSuffix(arg, model.SemanticModelSuffix) {
		candidates = append(candidates, arg+model.SemanticModelSuffix)
	}

	for _, c := range candidates {
		if !strings.HasSuffix(c, model.SemanticModelSuffix) {
			continue
		}
		if st, err := os.Stat(c); err == nil && st.IsDir() {
			return filepath.Abs(c)
		}
		joined := filepath.Join(getExportRoot(), c)
		if st, err := os.Stat(joined); err == nil && st.IsDir() {
			return filepath.Abs(joined)
		}
	}

	// Bare name: search one workspace level down.
	name := strings.TrimSuffix(arg, model.SemanticModelSuffix)
	matches, _ := filepath.Glob(filepath.Join(getExportRoot(), "*", name+model.SemanticModelSuffix))
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("model '%s' not found under %s", arg, getExportRoot())
	case 1:
		return filepath.Abs(matches[0])
	default:
		return "", fmt.Errorf("model '%s' is ambiguous, matches: %s", arg, strings.Join(matches, ", "))
	}
}

// parseMode parses a --mode flag value. An empty value defers to the
// rename_mode setting in remodel.yaml.
func parseMode(s string) (rename.Mode, error) {
	if s == "" {
		s = getRootConfig().RenameMode
	}
	switch s {
	case "", "display-only", "display_only":
		return rename.ModeDisplayOnly, nil
	case "full":
		return rename.ModeFull, nil
	default:
		return 0, fmt.Errorf("invalid mode %q (expected display-only or full)", s)
	}
}

// printRenameResult renders a rename result in the active output mode.
// In text mode a failed batch becomes the command error.
func printRenameResult(res rename.Result, what string) error {
	if isJSONOutput() {
		if res.OK() {
			outputSuccessWithWarnings(res, res.Warnings, &Meta{Count: res.Success})
			return nil
		}
		outputError(ErrRenameFailed, fmt.Sprintf("%s completed with %d error(s)", what, res.ErrorCount()), res, "")
		return nil
	}

	for _, w := range res.Warnings {
		ui.Warning(w)
	}
	for _, e := range res.Errors {
		ui.Error(e)
	}
	if !res.OK() {
		return fmt.Errorf("%s completed with %d error(s)", what, res.ErrorCount())
	}
	ui.Successf("%s: %d change(s) applied", what, res.Success)
	return nil
}

// Package backup takes restorable snapshots of a semantic model and its
// paired report package before any mutating operation, and restores them on
// explicit request. Snapshots are append-only: nothing in this package ever
// deletes or rewrites one.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/remodelcli/remodel/internal/model"
)

// DirName is the folder under the export root that holds all snapshots.
const DirName = "BACKUP"

const timestampLayout = "20060102_150405"

// Manager creates and restores snapshots.
type Manager struct {
	log *zap.SugaredLogger

	// now is swappable for tests.
	now func() time.Time
}

// NewManager returns a Manager logging through log. A nil logger is
// replaced with a no-op one.
func NewManager(log *zap.SugaredLogger) *Manager {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Manager{log: log, now: time.Now}
}

// Snapshot copies the model folder and its paired report folder into
// BACKUP/<Workspace>/<Model>_<label>_<timestamp>/ under the export root.
// Two snapshots of the same model never collide, even within one second.
func (m *Manager) Snapshot(modelPath, label string) (string, error) {
	info, err := os.Stat(modelPath)
	if err != nil {
		return "", fmt.Errorf("model path: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("model path is not a directory: %s", modelPath)
	}

	root := FindExportRoot(modelPath)
	workspace, modelName := splitWorkspaceModel(modelPath)
	stamp := m.now().Format(timestampLayout)

	base := fmt.Sprintf("%s_%s_%s", modelName, slug.Make(label), stamp)
	dest := filepath.Join(root, DirName, workspace, base)
	for n := 2; ; n++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(root, DirName, workspace, fmt.Sprintf("%s_%d", base, n))
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", fmt.Errorf("create backup folder: %w", err)
	}

	m.log.Infow("creating backup", "model", modelPath, "dest", dest)

	if err := copyTree(modelPath, filepath.Join(dest, filepath.Base(modelPath))); err != nil {
		return "", fmt.Errorf("copy model: %w", err)
	}

	reportPath := model.PairedReportDir(modelPath)
	if st, err := os.Stat(reportPath); err == nil && st.IsDir() {
		if err := copyTree(reportPath, filepath.Join(dest, filepath.Base(reportPath))); err != nil {
			return "", fmt.Errorf("copy report: %w", err)
		}
	}

	return dest, nil
}

// Restore overwrites the model (and/or paired report) at targetDir's
// location with the backup contents. Never called by a rename; explicit
// user action only.
func (m *Manager) Restore(backupPath, targetDir string, restoreModel, restoreReport bool) (success, failed int, messages []string) {
	entries, err := os.ReadDir(backupPath)
	if err != nil {
		return 0, 1, []string{fmt.Sprintf("read backup: %v", err)}
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		isModel := strings.HasSuffix(e.Name(), model.SemanticModelSuffix)
		isReport := strings.HasSuffix(e.Name(), model.ReportSuffix)
		if (isModel && !restoreModel) || (isReport && !restoreReport) || (!isModel && !isReport) {
			continue
		}
		src := filepath.Join(backupPath, e.Name())
		dst := filepath.Join(targetDir, e.Name())
		if err := os.RemoveAll(dst); err != nil {
			failed++
			messages = append(messages, fmt.Sprintf("%s: clear target: %v", e.Name(), err))
			continue
		}
		if err := copyTree(src, dst); err != nil {
			failed++
			messages = append(messages, fmt.Sprintf("%s: %v", e.Name(), err))
			continue
		}
		m.log.Infow("restored from backup", "source", src, "target", dst)
		success++
		messages = append(messages, fmt.Sprintf("restored %s", e.Name()))
	}

	if success == 0 && failed == 0 {
		failed = 1
		messages = append(messages, "no model or report folders found in backup")
	}
	return success, failed, messages
}

// FindExportRoot walks up from the model path looking for the folder that
// anchors an export tree (it holds the Raw Files tree or an existing BACKUP
// folder). Falls back to the parent of the workspace folder so a bare
// workspace checkout still gets a usable backup location.
func FindExportRoot(modelPath string) string {
	current := modelPath
	for depth := 0; depth < 10; depth++ {
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		if dirExists(filepath.Join(current, "Raw Files")) || dirExists(filepath.Join(current, DirName)) {
			return current
		}
		current = parent
	}
	return filepath.Dir(filepath.Dir(modelPath))
}

// splitWorkspaceModel extracts the workspace and clean model name from a
// model path; the path segment after Raw Files wins when present.
func splitWorkspaceModel(modelPath string) (workspace, modelName string) {
	parts := strings.Split(filepath.ToSlash(modelPath), "/")
	for i, p := range parts {
		if p == "Raw Files" && i+2 < len(parts) {
			return parts[i+1], trimPackageSuffix(parts[i+2])
		}
	}
	return model.WorkspaceName(modelPath), model.Name(modelPath)
}

func trimPackageSuffix(name string) string {
	name = strings.TrimSuffix(name, model.SemanticModelSuffix)
	return strings.TrimSuffix(name, model.ReportSuffix)
}

func dirExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

// copyTree recursively copies a directory. It keeps going after individual
// file failures and reports them together.
func copyTree(src, dst string) error {
	var errs error
	walkErr := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			errs = multierr.Append(errs, err)
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if err := copyFile(path, target); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", rel, err))
		}
		return nil
	})
	return multierr.Append(errs, walkErr)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// Package report manages the connection side of report packages: the
// definition.pbir file that binds a report to either a local semantic model
// folder or a previously published remote copy. Rebinding to local runs
// before any visual rewrite so that the rewrite touches the files the user
// will actually open.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/remodelcli/remodel/internal/atomicfile"
	"github.com/remodelcli/remodel/internal/model"
)

// DefinitionFile is the connection definition inside a report folder.
const DefinitionFile = "definition.pbir"

// Connection type labels returned by ConnectionType.
const (
	ConnLocal  = "local"
	ConnRemote = "remote"
)

var initialCatalogRe = regexp.MustCompile(`(?i)initial\s+catalog\s*=\s*["']?([^";]+)["']?`)

// Rebinder rewrites report connections.
type Rebinder struct {
	log *zap.SugaredLogger
}

// NewRebinder returns a Rebinder logging through log (nil means no-op).
func NewRebinder(log *zap.SugaredLogger) *Rebinder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Rebinder{log: log}
}

// RebindAllToLocal points every sibling report that references the model at
// its local folder. Reports already bound locally are left untouched and
// counted as success. Idempotent.
func (r *Rebinder) RebindAllToLocal(modelPath string) (success, failed int) {
	modelName := model.Name(modelPath)
	reports, err := model.ReportDirs(modelPath)
	if err != nil {
		return 0, 0
	}
	for _, reportDir := range reports {
		refs, local := referencesModel(reportDir, modelName)
		if !refs {
			continue
		}
		if local {
			success++
			continue
		}
		if err := r.SetLocal(reportDir, modelName); err != nil {
			r.log.Warnw("rebind failed", "report", reportDir, "error", err)
			failed++
			continue
		}
		success++
	}
	return success, failed
}

// SetLocal rewrites a report's connection to the relative byPath form. All
// other keys of the definition document are preserved as-is.
func (r *Rebinder) SetLocal(reportDir, modelName string) error {
	def, err := readDefinition(reportDir)
	if err != nil {
		return err
	}
	def["datasetReference"] = map[string]any{
		"byPath": map[string]any{
			"path": "../" + modelName + model.SemanticModelSuffix,
		},
	}
	if err := writeDefinition(reportDir, def); err != nil {
		return err
	}
	r.log.Infow("report bound to local model", "report", filepath.Base(reportDir), "model", modelName)
	return nil
}

// SetRemote rewrites a report's connection to a published workspace copy.
func (r *Rebinder) SetRemote(reportDir, workspaceID, modelID, modelName string) error {
	def, err := readDefinition(reportDir)
	if err != nil {
		return err
	}
	def["datasetReference"] = map[string]any{
		"byConnection": map[string]any{
			"connectionString": fmt.Sprintf(
				"Data Source=powerbi://api.powerbi.com/v1.0/myorg/%s;Initial Catalog=%s;Integrated Security=ClaimsToken;semanticmodelid=%s",
				workspaceID, modelName, modelID),
		},
	}
	return writeDefinition(reportDir, def)
}

// RestoreConnection copies the dataset reference back out of a backup of
// the same report.
func (r *Rebinder) RestoreConnection(reportDir, backupPath string) error {
	backupDef, err := readDefinition(filepath.Join(backupPath, filepath.Base(reportDir)))
	if err != nil {
		return fmt.Errorf("backup connection: %w", err)
	}
	ref, ok := backupDef["datasetReference"]
	if !ok {
		return fmt.Errorf("backup %s has no dataset reference", DefinitionFile)
	}
	def, err := readDefinition(reportDir)
	if err != nil {
		return err
	}
	def["datasetReference"] = ref
	return writeDefinition(reportDir, def)
}

// ConnectionType reports how a report is currently bound: ConnLocal,
// ConnRemote, or empty when no connection file or reference exists.
func ConnectionType(reportDir string) string {
	def, err := readDefinition(reportDir)
	if err != nil {
		return ""
	}
	ref, _ := def["datasetReference"].(map[string]any)
	switch {
	case ref == nil:
		return ""
	case ref["byPath"] != nil:
		return ConnLocal
	case ref["byConnection"] != nil:
		return ConnRemote
	}
	return ""
}

// referencesModel decides whether a report is paired with the named model:
// a byPath reference naming its folder, or a remote connection whose
// Initial Catalog matches.
func referencesModel(reportDir, modelName string) (refs, local bool) {
	def, err := readDefinition(reportDir)
	if err != nil {
		return false, false
	}
	ref, _ := def["datasetReference"].(map[string]any)
	if ref == nil {
		return false, false
	}
	if byPath, _ := ref["byPath"].(map[string]any); byPath != nil {
		if path, _ := byPath["path"].(string); strings.Contains(path, modelName) {
			return true, true
		}
	}
	if byConn, _ := ref["byConnection"].(map[string]any); byConn != nil {
		conn, _ := byConn["connectionString"].(string)
		if m := initialCatalogRe.FindStringSubmatch(conn); m != nil {
			catalog := strings.Trim(strings.TrimSpace(m[1]), `"'`)
			if catalog == modelName {
				return true, false
			}
		}
	}
	return false, false
}

func readDefinition(reportDir string) (map[string]any, error) {
	data, err := os.ReadFile(filepath.Join(reportDir, DefinitionFile))
	if err != nil {
		return nil, err
	}
	var def map[string]any
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%s: %w", DefinitionFile, err)
	}
	return def, nil
}

func writeDefinition(reportDir string, def map[string]any) error {
	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(filepath.Join(reportDir, DefinitionFile), append(data, '\n'), 0)
}

package backup

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Info describes one snapshot found under the backup root.
type Info struct {
	Workspace string    `json:"workspace"`
	ModelName string    `json:"model"`
	Operation string    `json:"operation"`
	Path      string    `json:"path"`
	Taken     time.Time `json:"taken"`
	HasModel  bool      `json:"has_model"`
	HasReport bool      `json:"has_report"`
	SizeBytes int64     `json:"size_bytes"`
}

var timestampRe = regexp.MustCompile(`(\d{8}_\d{6})(?:_\d+)?$`)

// Scan lists every snapshot under <exportRoot>/BACKUP, newest first.
func Scan(exportRoot string) ([]Info, error) {
	root := filepath.Join(exportRoot, DirName)
	workspaces, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var backups []Info
	for _, ws := range workspaces {
		if !ws.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(root, ws.Name()))
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			path := filepath.Join(root, ws.Name(), e.Name())
			info := parseFolderName(e.Name())
			info.Workspace = ws.Name()
			info.Path = path
			inspectContents(&info)
			backups = append(backups, info)
		}
	}

	sort.Slice(backups, func(i, j int) bool { return backups[i].Taken.After(backups[j].Taken) })
	return backups, nil
}

// Latest returns the newest snapshot for a model, optionally filtered by
// operation label. Returns nil when none exists.
func Latest(modelPath, operation string) (*Info, error) {
	root := FindExportRoot(modelPath)
	workspace, modelName := splitWorkspaceModel(modelPath)

	backups, err := Scan(root)
	if err != nil {
		return nil, err
	}
	for i := range backups {
		b := &backups[i]
		if b.Workspace != workspace || b.ModelName != modelName {
			continue
		}
		if operation != "" && b.Operation != operation {
			continue
		}
		return b, nil
	}
	return nil, nil
}

// knownOperations are the labels the engine writes into snapshot folder
// names. Matched longest-first so table_rename is not parsed as model
// "..._table" with operation "rename".
var knownOperations = []string{"table_rename", "column_rename", "bulk_rename", "manual"}

// parseFolderName decodes <model>_<operation>_<timestamp>[_n].
func parseFolderName(name string) Info {
	info := Info{ModelName: name, Operation: "backup"}

	m := timestampRe.FindStringSubmatchIndex(name)
	if m == nil {
		return info
	}
	if t, err := time.ParseInLocation(timestampLayout, name[m[2]:m[3]], time.Local); err == nil {
		info.Taken = t
	}
	prefix := strings.TrimSuffix(name[:m[0]], "_")
	for _, op := range knownOperations {
		if strings.HasSuffix(prefix, "_"+op) {
			info.ModelName = strings.TrimSuffix(prefix, "_"+op)
			info.Operation = op
			return info
		}
	}
	if i := strings.LastIndex(prefix, "_"); i > 0 {
		info.ModelName = prefix[:i]
		info.Operation = prefix[i+1:]
	} else {
		info.ModelName = prefix
	}
	return info
}

func inspectContents(info *Info) {
	entries, err := os.ReadDir(info.Path)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub := filepath.Join(info.Path, e.Name())
		if fileExists(filepath.Join(sub, "definition", "model.tmdl")) {
			info.HasModel = true
		}
		if fileExists(filepath.Join(sub, "definition.pbir")) {
			info.HasReport = true
		}
	}
	_ = filepath.WalkDir(info.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if st, err := d.Info(); err == nil {
			info.SizeBytes += st.Size()
		}
		return nil
	})
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

package report

import (
	"os"
	"path/filepath"
)

// VisualFiles returns every visual definition file in a report package:
// the legacy top-level report.json, the definition/report.json form, and
// every JSON file under the definition/pages tree (pages, visuals,
// bookmarks). Missing layers are simply absent from the result.
func VisualFiles(reportDir string) []string {
	var files []string

	for _, candidate := range []string{
		filepath.Join(reportDir, "report.json"),
		filepath.Join(reportDir, "definition", "report.json"),
	} {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			files = append(files, candidate)
		}
	}

	pagesDir := filepath.Join(reportDir, "definition", "pages")
	_ = filepath.WalkDir(pagesDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".json" {
			files = append(files, path)
		}
		return nil
	})

	return files
}

package source

import (
	"os"
	"path/filepath"
	"sort"
)

// ScanDir walks dataDir and returns every .jsonl ledger file, ordered by path.
// A missing directory yields no files and no error.
func ScanDir(dataDir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(dataDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() || filepath.Ext(path) != ".jsonl" {
			return nil
		}

		rel, relErr := filepath.Rel(dataDir, path)
		if relErr != nil {
			rel = d.Name()
		}
		files = append(files, DiscoveredFile{Path: path, Name: filepath.ToSlash(rel)})
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

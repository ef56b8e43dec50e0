package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/pocket/internal/logger"
	"github.com/theirongolddev/pocket/internal/model"
	"github.com/theirongolddev/pocket/internal/source"
	"github.com/theirongolddev/pocket/internal/store"
)

// LedgerCache is the subset of the SQLite cache used by LoadWithCache.
type LedgerCache interface {
	GetTrackedFiles() (map[string]store.FileInfo, error)
	LoadFile(filePath string) (model.Ledger, error)
	SaveFile(filePath string, ledger model.Ledger, parseErrors int, mtimeNs, sizeBytes int64) error
	DeleteFile(filePath string) error
}

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHits int
	Reparsed  int
	Pruned    int
}

// LoadWithCache discovers, diffs against cache, parses only changed files,
// and returns the combined ledger in file order.
func LoadWithCache(dataDir string, cache LedgerCache, progressFn ProgressFunc) (*CachedLoadResult, error) {
	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	tracked, err := cache.GetTrackedFiles()
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	result := &CachedLoadResult{LoadResult: LoadResult{TotalFiles: len(files)}}

	// Drop cache entries for files that no longer exist
	present := make(map[string]struct{}, len(files))
	for _, f := range files {
		present[f.Path] = struct{}{}
	}
	for path := range tracked {
		if _, ok := present[path]; ok {
			continue
		}
		if err := cache.DeleteFile(path); err != nil {
			logger.L().WithFields(logrus.Fields{"file": path, "error": err}).Warn("could not prune cache entry")
			continue
		}
		result.Pruned++
	}

	ledgers := make([]model.Ledger, len(files))
	usable := make([]bool, len(files))
	var toReparse []int // indices into files

	for i, f := range files {
		info, err := os.Stat(f.Path)
		if err != nil {
			toReparse = append(toReparse, i)
			continue
		}

		cached, ok := tracked[f.Path]
		if !ok || cached.MtimeNs != info.ModTime().UnixNano() || cached.SizeBytes != info.Size() {
			toReparse = append(toReparse, i)
			continue
		}

		l, err := cache.LoadFile(f.Path)
		if err != nil {
			logger.L().WithFields(logrus.Fields{"file": f.Name, "error": err}).Warn("cache read failed, reparsing")
			toReparse = append(toReparse, i)
			continue
		}
		ledgers[i] = l
		usable[i] = true
		result.CacheHits++
		result.ParsedFiles++
		result.ParseErrors += cached.ParseErrors
	}

	result.Reparsed = len(toReparse)

	if len(toReparse) > 0 {
		changed := make([]source.DiscoveredFile, len(toReparse))
		for j, idx := range toReparse {
			changed[j] = files[idx]
		}

		var reported atomic.Int64
		reported.Store(int64(result.CacheHits))
		parsed := parseFiles(changed, func(int) {
			n := reported.Add(1)
			if progressFn != nil {
				progressFn(int(n), result.TotalFiles)
			}
		})

		for j, pr := range parsed {
			idx := toReparse[j]
			if !collect(&result.LoadResult, pr) {
				continue
			}
			ledgers[idx] = pr.Ledger
			usable[idx] = true

			info, err := os.Stat(pr.File.Path)
			if err != nil {
				continue
			}
			if err := cache.SaveFile(pr.File.Path, pr.Ledger, pr.ParseErrors, info.ModTime().UnixNano(), info.Size()); err != nil {
				logger.L().WithFields(logrus.Fields{"file": pr.File.Name, "error": err}).Warn("could not cache ledger file")
			}
		}
	}

	ordered := make([]model.Ledger, 0, len(files))
	for i := range files {
		if usable[i] {
			ordered = append(ordered, ledgers[i])
		}
	}
	merge(&result.LoadResult, ordered)

	return result, nil
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "pocket")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "pocket")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "ledger.db")
}

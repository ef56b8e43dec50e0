package pipeline

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/pocket/internal/logger"
	"github.com/theirongolddev/pocket/internal/model"
	"github.com/theirongolddev/pocket/internal/source"
)

// LoadResult holds the output of the full data loading pipeline.
type LoadResult struct {
	Ledger      model.Ledger
	TotalFiles  int
	ParsedFiles int
	ParseErrors int
	FileErrors  int
	Duplicates  int // records dropped because their ID was already seen
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load discovers and parses all ledger files under dataDir.
// It uses a bounded worker pool for parallel parsing.
func Load(dataDir string, progressFn ProgressFunc) (*LoadResult, error) {
	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	result := &LoadResult{TotalFiles: len(files)}
	if len(files) == 0 {
		return result, nil
	}

	parsed := parseFiles(files, func(n int) {
		if progressFn != nil {
			progressFn(n, len(files))
		}
	})

	ledgers := make([]model.Ledger, 0, len(parsed))
	for _, pr := range parsed {
		if !collect(result, pr) {
			continue
		}
		ledgers = append(ledgers, pr.Ledger)
	}
	merge(result, ledgers)

	return result, nil
}

// parseFiles parses files concurrently. Results are returned in the order of
// files regardless of completion order. done receives the running count.
func parseFiles(files []source.DiscoveredFile, done func(n int)) []source.ParseResult {
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}

	results := make([]source.ParseResult, len(files))
	var processed atomic.Int64

	var g errgroup.Group
	g.SetLimit(numWorkers)
	for i, f := range files {
		g.Go(func() error {
			results[i] = source.ParseFile(f)
			done(int(processed.Add(1)))
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// collect folds a file's counters into result and reports whether its records are usable.
func collect(result *LoadResult, pr source.ParseResult) bool {
	if pr.Err != nil {
		result.FileErrors++
		logger.L().WithFields(logrus.Fields{"file": pr.File.Name, "error": pr.Err}).Warn("could not read ledger file")
		return false
	}
	result.ParsedFiles++
	result.ParseErrors += pr.ParseErrors
	if pr.ParseErrors > 0 {
		logger.L().WithFields(logrus.Fields{
			"file":   pr.File.Name,
			"errors": pr.ParseErrors,
			"first":  firstIssue(pr.Issues),
		}).Warn("skipped invalid ledger lines")
	}
	return true
}

func firstIssue(issues []string) string {
	if len(issues) == 0 {
		return ""
	}
	return issues[0]
}

// merge appends ledgers to result in order. A record whose ID repeats one
// already merged for the same record type is dropped.
func merge(result *LoadResult, ledgers []model.Ledger) {
	seenTx := make(map[string]struct{})
	seenBudget := make(map[string]struct{})
	seenCard := make(map[string]struct{})

	for _, l := range ledgers {
		for _, t := range l.Transactions {
			if !markSeen(seenTx, t.ID) {
				result.Duplicates++
				continue
			}
			result.Ledger.Transactions = append(result.Ledger.Transactions, t)
		}
		for _, b := range l.Budgets {
			if !markSeen(seenBudget, b.ID) {
				result.Duplicates++
				continue
			}
			result.Ledger.Budgets = append(result.Ledger.Budgets, b)
		}
		for _, c := range l.Cards {
			if !markSeen(seenCard, c.ID) {
				result.Duplicates++
				continue
			}
			result.Ledger.Cards = append(result.Ledger.Cards, c)
		}
	}

	if result.Duplicates > 0 {
		logger.L().WithField("records", result.Duplicates).Warn("dropped records with duplicate IDs")
	}
}

func markSeen(seen map[string]struct{}, id string) bool {
	if _, ok := seen[id]; ok {
		return false
	}
	seen[id] = struct{}{}
	return true
}

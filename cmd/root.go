package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/pocket/internal/cli"
	"github.com/theirongolddev/pocket/internal/config"
	"github.com/theirongolddev/pocket/internal/logger"
	"github.com/theirongolddev/pocket/internal/model"
	"github.com/theirongolddev/pocket/internal/pipeline"
	"github.com/theirongolddev/pocket/internal/source"
	"github.com/theirongolddev/pocket/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagCategory string
	flagSearch   string
	flagFrom     string
	flagTo       string
	flagDays     int
	flagSort     string
	flagOrder    string
	flagDataDir  string
	flagTimezone string
	flagSample   bool
	flagNoCache  bool
	flagQuiet    bool
	flagVerbose  bool
)

// Resolved once per invocation by setup.
var (
	appCfg config.Config
	appLoc *time.Location
)

var rootCmd = &cobra.Command{
	Use:               "pocket",
	Short:             "Personal finance ledger CLI",
	Long:              "Search, filter, and summarize your transactions, budgets, and cards.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagCategory, "category", "c", "", `Filter to category (exact, case-insensitive; "All" for none)`)
	pf.StringVarP(&flagSearch, "search", "s", "", "Filter by text in title or merchant")
	pf.StringVar(&flagFrom, "from", "", "First day to include (YYYY-MM-DD)")
	pf.StringVar(&flagTo, "to", "", "Last day to include (YYYY-MM-DD)")
	pf.IntVarP(&flagDays, "days", "n", 0, "Only the last N days, including today (0 = all)")
	pf.StringVar(&flagSort, "sort", "date", "Sort by date, amount, or title")
	pf.StringVar(&flagOrder, "order", "desc", "Sort order: asc or desc")
	pf.StringVarP(&flagDataDir, "data-dir", "d", "", "Ledger directory (default from config)")
	pf.StringVar(&flagTimezone, "tz", "", "Timezone for calendar days (IANA name or Local)")
	pf.BoolVar(&flagSample, "sample", false, "Use the built-in sample ledger")
	pf.BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse everything")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// setup loads the environment and config, then fills in flags the user did not set.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(".env", filepath.Join(config.ConfigDir(), ".env")); err != nil {
		return err
	}

	level := os.Getenv(config.EnvLogLevel)
	if flagVerbose {
		level = "debug"
	}
	logger.Init(level, os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagTimezone != "" {
		cfg.General.Timezone = flagTimezone
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config %s: %w", config.ConfigPath(), err)
	}

	flags := cmd.Flags()
	if !flags.Changed("sort") {
		flagSort = cfg.General.DefaultSort
	}
	if !flags.Changed("order") {
		flagOrder = cfg.General.DefaultOrder
	}
	if !flags.Changed("days") {
		flagDays = cfg.General.DefaultDays
	}
	if flagDataDir == "" {
		flagDataDir = config.DataDir(cfg)
	}

	loc, err := config.Location(cfg)
	if err != nil {
		return err
	}

	appCfg, appLoc = cfg, loc
	logger.L().WithField("data_dir", flagDataDir).Debug("configuration resolved")
	return nil
}

// loadData is the shared data loading path used by all commands.
// Uses SQLite cache when available for fast subsequent runs, and falls back
// to the sample ledger when the data directory is empty.
func loadData() (model.Ledger, error) {
	if flagSample {
		return withOverrides(source.Sample()), nil
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning %s...\n", flagDataDir)
	}

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%50 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", current, total)
		}
	}

	result, err := loadLedger(progressFn)
	if err != nil {
		return model.Ledger{}, err
	}

	if result.TotalFiles == 0 {
		if !appCfg.General.SampleWhenEmpty {
			return model.Ledger{}, nil
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  No ledger files found, showing sample data\n")
		}
		return withOverrides(source.Sample()), nil
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "\r  Loaded %s records from %d files", cli.FormatNumber(int64(result.Ledger.Len())), result.ParsedFiles)
		if result.ParseErrors > 0 {
			fmt.Fprintf(os.Stderr, " (%d invalid lines skipped)", result.ParseErrors)
		}
		fmt.Fprintf(os.Stderr, "    \n")
	}

	return withOverrides(result.Ledger), nil
}

func loadLedger(progressFn pipeline.ProgressFunc) (*pipeline.LoadResult, error) {
	// Try cached load unless --no-cache
	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			logger.L().WithField("error", err).Warn("cache unavailable, doing full parse")
		} else {
			defer func() { _ = cache.Close() }()

			cr, err := pipeline.LoadWithCache(flagDataDir, cache, progressFn)
			if err == nil {
				logger.L().WithField("cached", cr.CacheHits).WithField("reparsed", cr.Reparsed).Debug("cache load")
				return &cr.LoadResult, nil
			}
			logger.L().WithField("error", err).Warn("cache error, falling back to full parse")
		}
	}

	return pipeline.Load(flagDataDir, progressFn)
}

func withOverrides(l model.Ledger) model.Ledger {
	l.Budgets = pipeline.WithLimitOverrides(l.Budgets, config.LimitOverrides(appCfg))
	return l
}

// buildQuery turns the filter flags into query parameters.
// --from/--to take precedence over --days.
func buildQuery(now time.Time) (model.Query, error) {
	key, err := pipeline.ParseSortKey(flagSort)
	if err != nil {
		return model.Query{}, err
	}
	order, err := pipeline.ParseSortOrder(flagOrder)
	if err != nil {
		return model.Query{}, err
	}

	q := model.Query{
		Search:   flagSearch,
		Category: pipeline.ParseCategory(flagCategory),
		Sort:     key,
		Order:    order,
	}

	r, err := dateRange(now.In(location()))
	if err != nil {
		return model.Query{}, err
	}
	q.Range = r

	return q, pipeline.ValidateQuery(q)
}

func dateRange(now time.Time) (*model.DateRange, error) {
	if flagFrom == "" && flagTo == "" {
		return pipeline.LastNDays(now, flagDays), nil
	}

	loc := now.Location()
	r := &model.DateRange{
		Start: time.Date(1, time.January, 1, 0, 0, 0, 0, loc),
		End:   now,
	}
	if flagFrom != "" {
		start, err := pipeline.ParseDay(flagFrom, loc)
		if err != nil {
			return nil, err
		}
		r.Start = start
	}
	if flagTo != "" {
		end, err := pipeline.ParseDay(flagTo, loc)
		if err != nil {
			return nil, err
		}
		r.End = end
	}
	return r, nil
}

func location() *time.Location {
	if appLoc == nil {
		return time.Local
	}
	return appLoc
}

// describeQuery summarizes the active filters for a title bar.
func describeQuery(q model.Query) string {
	s := "All"
	if q.Category != nil {
		s = *q.Category
	}
	if q.Search != "" {
		s += fmt.Sprintf(`  "%s"`, q.Search)
	}
	if q.Range != nil {
		start := "start"
		if q.Range.Start.Year() > 1 {
			start = cli.FormatMonthDay(q.Range.Start)
		}
		s += fmt.Sprintf("  %s to %s", start, cli.FormatMonthDay(q.Range.End))
	}
	return s
}

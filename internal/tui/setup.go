package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/pocket/internal/config"
	"github.com/theirongolddev/pocket/internal/pipeline"
	"github.com/theirongolddev/pocket/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues holds the answers of the first-run form.
type setupValues struct {
	dataDir string
	sort    string // "date:desc", "amount:desc", or "title:asc"
	days    int
	theme   string
}

func newSetupForm(dataDir string, files int, vals *setupValues) *huh.Form {
	vals.dataDir = dataDir
	if vals.sort == "" {
		vals.sort = "date:desc"
	}
	if vals.theme == "" {
		vals.theme = theme.Active.Name
	}

	found := "No ledger files found yet; sample data is shown until you add some."
	if files > 0 {
		found = fmt.Sprintf("Found %d ledger files in %s.", files, dataDir)
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(th.Name, th.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to pocket").
				Description(found),
			huh.NewInput().
				Title("Ledger directory").
				Description("Where your *.jsonl ledger files live.").
				Value(&vals.dataDir),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default sort").
				Options(
					huh.NewOption("Newest first", "date:desc"),
					huh.NewOption("Largest amount first", "amount:desc"),
					huh.NewOption("Title A-Z", "title:asc"),
				).
				Value(&vals.sort),
			huh.NewSelect[int]().
				Title("Default date range").
				Options(
					huh.NewOption("All dates", 0),
					huh.NewOption("Last 7 days", 7),
					huh.NewOption("Last 30 days", 30),
				).
				Value(&vals.days),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
		),
	).WithShowHelp(true)
}

// saveSetupConfig applies the form answers to the running app and persists them.
func (a *App) saveSetupConfig() error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	if dir := strings.TrimSpace(a.setupVals.dataDir); dir != "" && dir != a.opts.DataDir {
		cfg.General.DataDir = dir
	}

	sortKey, order, _ := strings.Cut(a.setupVals.sort, ":")
	if k, err := pipeline.ParseSortKey(sortKey); err == nil {
		cfg.General.DefaultSort = string(k)
		a.query.Sort = k
	}
	if o, err := pipeline.ParseSortOrder(order); err == nil {
		cfg.General.DefaultOrder = string(o)
		a.query.Order = o
	}

	cfg.General.DefaultDays = a.setupVals.days
	a.days = a.setupVals.days
	a.query.Range = nil

	cfg.Appearance.Theme = a.setupVals.theme
	theme.SetActive(cfg.Appearance.Theme)

	return config.Save(cfg)
}

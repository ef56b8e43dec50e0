// Package tui provides the interactive Bubble Tea dashboard for pocket.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/pocket/internal/cli"
	"github.com/theirongolddev/pocket/internal/logger"
	"github.com/theirongolddev/pocket/internal/model"
	"github.com/theirongolddev/pocket/internal/pipeline"
	"github.com/theirongolddev/pocket/internal/source"
	"github.com/theirongolddev/pocket/internal/store"
	"github.com/theirongolddev/pocket/internal/tui/components"
	"github.com/theirongolddev/pocket/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Options configures a new App.
type Options struct {
	DataDir         string
	Location        *time.Location
	Query           model.Query
	Days            int // quick range in days, 0 for none
	Sample          bool
	SampleWhenEmpty bool
	NoCache         bool
	LimitOverrides  map[string]decimal.Decimal
	NeedSetup       bool
}

// DataLoadedMsg is sent when the loader finishes.
type DataLoadedMsg struct {
	Ledger      model.Ledger
	Files       int
	ParseErrors int
	Sampled     bool
	LoadTime    time.Duration
	Err         error
}

// ProgressMsg reports file parsing progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	ledger   model.Ledger
	loaded   bool
	loadTime time.Duration
	loadErr  error
	sampled  bool
	files    int
	skipped  int

	// Derived from the current query
	filtered   []model.Transaction
	categories []model.CategoryStats
	cashflow   model.CashflowStats
	budget     model.BudgetSummary
	daily      []model.DailyStats
	insights   []model.Insight
	queryErr   error

	// Query state
	query   model.Query
	days    int
	chips   []string // "All" followed by the ledger's categories
	chipIdx int

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	txState   transactionsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	// Loading: progress and completion arrive over loadSub
	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg

	opts Options
	loc  *time.Location
	now  func() time.Time
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
)

const (
	tabOverview = iota
	tabTransactions
	tabBudget
	tabCards
)

// quickRanges are the day spans the "d" key cycles through. 0 means all dates.
var quickRanges = []int{0, 7, 30}

var sortKeys = []model.SortKey{model.SortByDate, model.SortByAmount, model.SortByTitle}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	q := opts.Query
	if q.Sort == "" {
		q.Sort = model.SortByDate
	}
	if q.Order == "" {
		q.Order = model.Descending
	}

	return App{
		query:     q,
		days:      opts.Days,
		needSetup: opts.NeedSetup,
		spinner:   sp,
		loadSub:   make(chan tea.Msg, 1),
		opts:      opts,
		loc:       loc,
		now:       time.Now,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadDataCmd(a.opts, a.loadSub),
		a.spinner.Tick,
	)
}

// recompute reruns the query and every view derived from it.
func (a *App) recompute() {
	q := a.query
	if a.days > 0 {
		q.Range = pipeline.LastNDays(a.now().In(a.loc), a.days)
	}

	txs, err := pipeline.Query(a.ledger.Transactions, q)
	a.queryErr = err
	a.filtered = txs
	a.categories = pipeline.CategoryTotals(txs)
	a.cashflow = pipeline.Cashflow(txs)
	a.daily = pipeline.DailySpending(txs, a.loc)
	a.budget = pipeline.BudgetOverview(a.ledger.Budgets)
	a.insights = pipeline.Insights(a.ledger.Budgets, txs)

	if a.txState.cursor >= len(a.filtered) {
		a.txState.cursor = len(a.filtered) - 1
	}
	if a.txState.cursor < 0 {
		a.txState.cursor = 0
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case DataLoadedMsg:
		a.applyLoad(msg)

		if a.needSetup {
			a.setupForm = newSetupForm(a.opts.DataDir, a.files, &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Cursor blinks and other internal messages
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.txState.searching {
		var cmd tea.Cmd
		a.txState.searchInput, cmd = a.txState.searchInput.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) applyLoad(msg DataLoadedMsg) {
	a.loaded = true
	a.loadErr = msg.Err
	a.loadTime = msg.LoadTime
	a.sampled = msg.Sampled
	a.files = msg.Files
	a.skipped = msg.ParseErrors
	a.ledger = msg.Ledger
	a.chips = categoryChips(msg.Ledger.Transactions)
	a.chipIdx = 0
	if a.query.Category != nil {
		for i, c := range a.chips {
			if strings.EqualFold(c, *a.query.Category) {
				a.chipIdx = i
			}
		}
	}
	a.recompute()
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if !a.loaded {
		return a, nil
	}

	// First-run setup wizard intercepts all keys
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Search mode intercepts all keys
	if a.txState.searching {
		return a.updateSearch(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if a.activeTab == tabTransactions {
		if handled := a.updateTransactionsNav(key); handled {
			return a, nil
		}
	}

	switch key {
	case "q":
		return a, tea.Quit

	case "/":
		a.activeTab = tabTransactions
		a.txState.searching = true
		a.txState.searchInput = newSearchInput(a.query.Search)
		a.txState.searchInput.Focus()
		a.txState.prevSearch = a.query.Search
		return a, a.txState.searchInput.Cursor.BlinkCmd()

	case "f":
		a.cycleCategory()
	case "s":
		a.cycleSort()
	case "o":
		a.toggleOrder()
	case "d":
		a.cycleRange()
	case "esc":
		a.clearFilters()

	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if idx := components.TabIdxByKey(key); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a *App) cycleCategory() {
	if len(a.chips) == 0 {
		return
	}
	a.chipIdx = (a.chipIdx + 1) % len(a.chips)
	a.query.Category = pipeline.ParseCategory(a.chips[a.chipIdx])
	a.txState.cursor = 0
	a.recompute()
}

func (a *App) cycleSort() {
	next := sortKeys[0]
	for i, k := range sortKeys {
		if k == a.query.Sort {
			next = sortKeys[(i+1)%len(sortKeys)]
		}
	}
	a.query.Sort = next
	a.recompute()
}

func (a *App) toggleOrder() {
	if a.query.Order == model.Ascending {
		a.query.Order = model.Descending
	} else {
		a.query.Order = model.Ascending
	}
	a.recompute()
}

// cycleRange steps through quickRanges. A custom range from the command
// line is dropped on the first press.
func (a *App) cycleRange() {
	next := quickRanges[0]
	for i, d := range quickRanges {
		if d == a.days && (d != 0 || a.query.Range == nil) {
			next = quickRanges[(i+1)%len(quickRanges)]
		}
	}
	a.days = next
	a.query.Range = nil
	a.txState.cursor = 0
	a.recompute()
}

func (a *App) clearFilters() {
	a.query.Search = ""
	a.query.Category = nil
	a.query.Range = nil
	a.chipIdx = 0
	a.days = 0
	a.txState.cursor = 0
	a.txState.offset = 0
	a.recompute()
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := a.saveSetupConfig(); err != nil {
			logger.L().WithField("error", err).Warn("saving setup config")
		}
		a.recompute()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  pocket needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	w := a.width
	h := a.height

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	countStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ pocket"))
	b.WriteString(subtitleStyle.Render(" · Personal Finance"))
	b.WriteString("\n\n")

	if a.progressMax > 0 {
		barW := 40
		if barW > w-30 {
			barW = w - 30
		}
		if barW < 20 {
			barW = 20
		}
		pct := float64(a.progress) / float64(a.progressMax)
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Parsing ledger files\n\n"))
		b.WriteString(components.ProgressBar(pct, barW))
		b.WriteString("\n")
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progress))))
		b.WriteString(subtitleStyle.Render(" / "))
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progressMax))))
	} else {
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Discovering ledger files..."))
	}

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Secondary).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		name     string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"1 2 3 4", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move through transactions"},
			{"g G", "First / Last transaction"},
		}},
		{"Filters", []struct{ key, desc string }{
			{"/", "Search title or merchant"},
			{"f", "Next category"},
			{"s", "Next sort key"},
			{"o", "Toggle sort order"},
			{"d", "Cycle date range (all, 7d, 30d)"},
			{"Esc", "Clear filters"},
		}},
		{"General", []struct{ key, desc string }{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.name))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderFilterRow(w)
	statusBar := components.RenderStatusBar(w, "[?]help  [/]search  [f]ilter  [q]uit", a.statusInfo())

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabTransactions:
		content = a.renderTransactionsTab(cw, contentH)
	case tabBudget:
		content = a.renderBudgetTab(cw)
	case tabCards:
		content = a.renderCardsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// renderFilterRow shows the category chips followed by the sort and range pills.
func (a App) renderFilterRow(w int) string {
	t := theme.Active

	chipStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)
	activeChip := lipgloss.NewStyle().Foreground(t.Background).Background(t.Accent).Bold(true).Padding(0, 1)
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	parts := make([]string, 0, len(a.chips))
	for i, c := range a.chips {
		if i == a.chipIdx {
			parts = append(parts, activeChip.Render(c))
		} else {
			parts = append(parts, chipStyle.Render(c))
		}
	}
	row := pillStyle.Render(" ") + strings.Join(parts, pillStyle.Render(" "))

	row += pillStyle.Render("  │ ") + accentStyle.Render(a.rangeLabel())
	row += pillStyle.Render(" │ ") + accentStyle.Render(fmt.Sprintf("%s %s", a.query.Sort, orderArrow(a.query.Order)))
	if a.query.Search != "" {
		row += pillStyle.Render(" │ ") + accentStyle.Render(fmt.Sprintf("%q", a.query.Search))
	}

	return lipgloss.NewStyle().Background(t.Surface).Width(w).MaxWidth(w).Render(row)
}

func (a App) rangeLabel() string {
	switch {
	case a.days > 0:
		return fmt.Sprintf("%dd", a.days)
	case a.query.Range != nil:
		return cli.FormatMonthDay(a.query.Range.Start) + " to " + cli.FormatMonthDay(a.query.Range.End)
	default:
		return "all dates"
	}
}

func (a App) statusInfo() string {
	if a.loadErr != nil {
		return "load failed: " + a.loadErr.Error()
	}
	if a.queryErr != nil {
		return a.queryErr.Error()
	}
	info := fmt.Sprintf("%d of %d transactions", len(a.filtered), len(a.ledger.Transactions))
	if a.sampled {
		return info + " · sample data"
	}
	if a.skipped > 0 {
		info += fmt.Sprintf(" · %d lines skipped", a.skipped)
	}
	return info + fmt.Sprintf(" · %.1fs", a.loadTime.Seconds())
}

// ─── Helpers ────────────────────────────────────────────────────

// categoryChips returns "All" plus each distinct category in first-seen order.
func categoryChips(txs []model.Transaction) []string {
	chips := []string{pipeline.AllCategories}
	seen := make(map[string]struct{})
	for _, tx := range txs {
		key := strings.ToLower(tx.Category)
		if _, ok := seen[key]; ok || key == "" {
			continue
		}
		seen[key] = struct{}{}
		chips = append(chips, tx.Category)
	}
	return chips
}

func orderArrow(o model.SortOrder) string {
	if o == model.Ascending {
		return "↑"
	}
	return "↓"
}

// loadDataCmd runs the loader in a background goroutine.
// It streams ProgressMsg updates and a final DataLoadedMsg through sub.
func loadDataCmd(opts Options, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			sub <- loadLedger(opts, func(current, total int) {
				// Non-blocking so workers aren't stalled; the next update catches up.
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			})
		}()

		// Block until the first message (either ProgressMsg or DataLoadedMsg)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

func loadLedger(opts Options, progressFn pipeline.ProgressFunc) DataLoadedMsg {
	start := time.Now()
	finish := func(msg DataLoadedMsg) DataLoadedMsg {
		msg.Ledger.Budgets = pipeline.WithLimitOverrides(msg.Ledger.Budgets, opts.LimitOverrides)
		msg.LoadTime = time.Since(start)
		return msg
	}

	if opts.Sample {
		return finish(DataLoadedMsg{Ledger: source.Sample(), Sampled: true})
	}

	result, err := load(opts, progressFn)
	if err != nil {
		return finish(DataLoadedMsg{Err: err})
	}
	if result.TotalFiles == 0 && opts.SampleWhenEmpty {
		return finish(DataLoadedMsg{Ledger: source.Sample(), Sampled: true})
	}
	return finish(DataLoadedMsg{
		Ledger:      result.Ledger,
		Files:       result.TotalFiles,
		ParseErrors: result.ParseErrors,
	})
}

func load(opts Options, progressFn pipeline.ProgressFunc) (*pipeline.LoadResult, error) {
	if !opts.NoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err == nil {
			cr, loadErr := pipeline.LoadWithCache(opts.DataDir, cache, progressFn)
			_ = cache.Close()
			if loadErr == nil {
				return &cr.LoadResult, nil
			}
			logger.L().WithField("error", loadErr).Warn("cache error, falling back to full parse")
		} else {
			logger.L().WithField("error", err).Warn("cache unavailable, doing full parse")
		}
	}
	return pipeline.Load(opts.DataDir, progressFn)
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with the background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

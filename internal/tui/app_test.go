package tui

import (
	"testing"
	"time"

	"github.com/theirongolddev/pocket/internal/model"
	"github.com/theirongolddev/pocket/internal/source"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)

func newTestApp(opts Options) App {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	a := NewApp(opts)
	a.now = func() time.Time { return testNow }
	return a
}

func loadedApp(t *testing.T, opts Options) App {
	t.Helper()
	m, _ := newTestApp(opts).Update(DataLoadedMsg{Ledger: source.Sample(), Sampled: true})
	return m.(App)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(a App, keys ...string) App {
	for _, k := range keys {
		m, _ := a.Update(keyMsg(k))
		a = m.(App)
	}
	return a
}

func filteredIDs(a App) []string {
	ids := make([]string, len(a.filtered))
	for i, tx := range a.filtered {
		ids[i] = tx.ID
	}
	return ids
}

func assertIDs(t *testing.T, a App, want ...string) {
	t.Helper()
	got := filteredIDs(a)
	if len(got) != len(want) {
		t.Fatalf("filtered = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("filtered = %v, want %v", got, want)
		}
	}
}

func TestLoadedAppShowsEverythingNewestFirst(t *testing.T) {
	a := loadedApp(t, Options{})
	assertIDs(t, a, "1", "2", "3", "4", "5", "6", "7", "8", "9", "10")

	wantChips := []string{"All", "Food", "Salary", "Bills", "Transport", "Shopping", "Entertainment", "Freelance"}
	if len(a.chips) != len(wantChips) {
		t.Fatalf("chips = %v, want %v", a.chips, wantChips)
	}
	for i := range wantChips {
		if a.chips[i] != wantChips[i] {
			t.Errorf("chips[%d] = %s, want %s", i, a.chips[i], wantChips[i])
		}
	}
}

func TestKeysIgnoredBeforeLoad(t *testing.T) {
	a := press(newTestApp(Options{}), "2", "f")
	if a.activeTab != tabOverview {
		t.Errorf("activeTab = %d, want overview", a.activeTab)
	}
	if a.query.Category != nil {
		t.Error("category changed before data loaded")
	}
}

func TestCategoryChipCycles(t *testing.T) {
	a := press(loadedApp(t, Options{}), "f")
	if a.query.Category == nil || *a.query.Category != "Food" {
		t.Fatalf("category = %v, want Food", a.query.Category)
	}
	assertIDs(t, a, "1", "4", "6")
	if len(a.categories) != 1 || !a.categories[0].Total.Equal(decimal.RequireFromString("148.40")) {
		t.Errorf("category totals = %+v, want Food 148.40", a.categories)
	}

	a = press(a, "f")
	assertIDs(t, a, "2")
	if len(a.categories) != 0 {
		t.Errorf("income-only selection should have no expense totals, got %+v", a.categories)
	}

	// Wrapping past the last chip returns to All
	a = press(a, "f", "f", "f", "f", "f", "f")
	if a.query.Category != nil {
		t.Errorf("category = %s, want none", *a.query.Category)
	}
	if len(a.filtered) != 10 {
		t.Errorf("len(filtered) = %d, want 10", len(a.filtered))
	}
}

func TestSortAndOrderKeys(t *testing.T) {
	a := press(loadedApp(t, Options{}), "s")
	if a.query.Sort != model.SortByAmount {
		t.Fatalf("sort = %s, want amount", a.query.Sort)
	}
	if a.filtered[0].ID != "2" {
		t.Errorf("largest first = %s, want 2", a.filtered[0].ID)
	}

	a = press(a, "s")
	if a.query.Sort != model.SortByTitle {
		t.Fatalf("sort = %s, want title", a.query.Sort)
	}
	if a.filtered[0].ID != "5" {
		t.Errorf("title desc first = %s, want 5 (Uber Ride)", a.filtered[0].ID)
	}

	a = press(a, "o")
	if a.query.Order != model.Ascending {
		t.Fatalf("order = %s, want asc", a.query.Order)
	}
	assertIDs(t, a, "6", "10", "1", "9", "2", "8", "7", "3", "4", "5")

	a = press(a, "s")
	if a.query.Sort != model.SortByDate {
		t.Errorf("sort = %s, want date after a full cycle", a.query.Sort)
	}
}

func TestQuickRangeCycles(t *testing.T) {
	a := press(loadedApp(t, Options{}), "d")
	if a.days != 7 {
		t.Fatalf("days = %d, want 7", a.days)
	}
	assertIDs(t, a, "1", "2")

	a = press(a, "d")
	if a.days != 30 {
		t.Fatalf("days = %d, want 30", a.days)
	}
	if len(a.filtered) != 10 {
		t.Errorf("30 days back from Aug 15 should keep all, got %d", len(a.filtered))
	}

	a = press(a, "d")
	if a.days != 0 || a.query.Range != nil {
		t.Errorf("third press should clear the range, days=%d range=%v", a.days, a.query.Range)
	}
}

func TestQuickRangeDropsCustomRange(t *testing.T) {
	day := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	a := loadedApp(t, Options{Query: model.Query{Range: &model.DateRange{Start: day, End: day}}})
	assertIDs(t, a, "2")

	a = press(a, "d")
	if a.query.Range != nil || a.days != 0 {
		t.Fatalf("range = %v days = %d, want all dates", a.query.Range, a.days)
	}
	if len(a.filtered) != 10 {
		t.Errorf("len(filtered) = %d, want 10", len(a.filtered))
	}
}

func TestSearchFiltersWhileTyping(t *testing.T) {
	a := press(loadedApp(t, Options{}), "/")
	if !a.txState.searching || a.activeTab != tabTransactions {
		t.Fatalf("searching=%v tab=%d, want search on transactions tab", a.txState.searching, a.activeTab)
	}

	a = press(a, "u", "b", "e", "r")
	if a.query.Search != "uber" {
		t.Fatalf("search = %q, want uber", a.query.Search)
	}
	assertIDs(t, a, "5")

	a = press(a, "enter")
	if a.txState.searching {
		t.Error("enter should leave search mode")
	}
	assertIDs(t, a, "5")

	a = press(a, "esc")
	if a.query.Search != "" {
		t.Errorf("esc should clear filters, search = %q", a.query.Search)
	}
	if len(a.filtered) != 10 {
		t.Errorf("len(filtered) = %d, want 10", len(a.filtered))
	}
}

func TestSearchCancelRestoresPrevious(t *testing.T) {
	a := loadedApp(t, Options{Query: model.Query{Search: "shop"}})
	assertIDs(t, a, "1", "6", "7")

	a = press(a, "/", "x", "y")
	if len(a.filtered) != 0 {
		t.Fatalf("filtered = %v, want none for %q", filteredIDs(a), a.query.Search)
	}

	a = press(a, "esc")
	if a.query.Search != "shop" {
		t.Errorf("search = %q, want shop restored", a.query.Search)
	}
	assertIDs(t, a, "1", "6", "7")
}

func TestEscClearsAllFilters(t *testing.T) {
	a := press(loadedApp(t, Options{}), "f", "d", "s")
	a = press(a, "esc")

	if a.query.Category != nil || a.query.Range != nil || a.days != 0 || a.chipIdx != 0 {
		t.Errorf("filters not cleared: category=%v range=%v days=%d chip=%d",
			a.query.Category, a.query.Range, a.days, a.chipIdx)
	}
	if a.query.Sort != model.SortByAmount {
		t.Errorf("sort = %s, esc should keep the sort key", a.query.Sort)
	}
}

func TestTabNavigation(t *testing.T) {
	a := loadedApp(t, Options{})

	tests := []struct {
		key  string
		want int
	}{
		{"3", tabBudget},
		{"right", tabCards},
		{"right", tabOverview},
		{"left", tabCards},
		{"tab", tabOverview},
		{"2", tabTransactions},
	}
	for _, tt := range tests {
		a = press(a, tt.key)
		if a.activeTab != tt.want {
			t.Fatalf("after %q activeTab = %d, want %d", tt.key, a.activeTab, tt.want)
		}
	}
}

func TestTransactionsCursor(t *testing.T) {
	a := press(loadedApp(t, Options{}), "2", "j", "j")
	if a.txState.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", a.txState.cursor)
	}

	a = press(a, "G")
	if a.txState.cursor != 9 {
		t.Fatalf("cursor = %d, want 9", a.txState.cursor)
	}

	a = press(a, "j", "k")
	if a.txState.cursor != 8 {
		t.Errorf("cursor = %d, want 8", a.txState.cursor)
	}

	a = press(a, "f")
	if a.txState.cursor != 0 {
		t.Errorf("cursor = %d after filter change, want 0", a.txState.cursor)
	}
}

func TestQuitKey(t *testing.T) {
	a := loadedApp(t, Options{})
	_, cmd := a.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestHelpToggle(t *testing.T) {
	a := press(loadedApp(t, Options{}), "?")
	if !a.showHelp {
		t.Fatal("? should show help")
	}
	a = press(a, "f")
	if a.showHelp {
		t.Error("any key should close help")
	}
	if a.query.Category != nil {
		t.Error("closing help should not apply the key")
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	m, _ := loadedApp(t, Options{}).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	a := m.(App)

	for _, key := range []string{"1", "2", "3", "4"} {
		a = press(a, key)
		if a.View() == "" {
			t.Errorf("tab %s rendered nothing", key)
		}
	}
}

func TestLoadLedgerSample(t *testing.T) {
	msg := loadLedger(Options{
		Sample:         true,
		LimitOverrides: map[string]decimal.Decimal{"shopping": decimal.NewFromInt(500)},
	}, nil)

	if !msg.Sampled || msg.Err != nil {
		t.Fatalf("sampled=%v err=%v", msg.Sampled, msg.Err)
	}
	for _, b := range msg.Ledger.Budgets {
		if b.Category == "Shopping" && !b.Limit.Equal(decimal.NewFromInt(500)) {
			t.Errorf("Shopping limit = %s, want 500", b.Limit)
		}
	}
}

func TestLoadLedgerEmptyDir(t *testing.T) {
	dir := t.TempDir()

	msg := loadLedger(Options{DataDir: dir, NoCache: true, SampleWhenEmpty: true}, nil)
	if !msg.Sampled || len(msg.Ledger.Transactions) != 10 {
		t.Errorf("empty dir with sample fallback: sampled=%v txs=%d", msg.Sampled, len(msg.Ledger.Transactions))
	}

	msg = loadLedger(Options{DataDir: dir, NoCache: true}, nil)
	if msg.Sampled || msg.Ledger.Len() != 0 {
		t.Errorf("empty dir without fallback: sampled=%v records=%d", msg.Sampled, msg.Ledger.Len())
	}
}

package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/pocket/internal/model"
	"github.com/theirongolddev/pocket/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, n := range []int{1, 3, 4, 7} {
		widths := LayoutRow(100, n)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != 100 {
			t.Errorf("LayoutRow(100, %d) sums to %d", n, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestCardRowPadsToTallest(t *testing.T) {
	theme.SetActive("flexoki-dark")

	short := ContentCard("Short", "Content", 22)
	tall := ContentCard("Tall", "1\n2\n3\n4\n5", 22)

	shortH := lipgloss.Height(short)
	tallH := lipgloss.Height(tall)
	if shortH >= tallH {
		t.Fatalf("short card (%d lines) should be shorter than tall card (%d)", shortH, tallH)
	}

	lines := strings.Split(CardRow([]string{tall, short}), "\n")
	if len(lines) != tallH {
		t.Fatalf("joined height = %d, want %d", len(lines), tallH)
	}
	for i, line := range lines[shortH:] {
		if !strings.Contains(line, "\x1b[") {
			t.Errorf("padding line %d has no styling", i+shortH)
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Balance", Value: "$12,866.32"},
		{Label: "Income", Value: "$5,150"},
		{Label: "Expenses", Value: "$440.87"},
	}, 90)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey("3"); got != 2 {
		t.Errorf("TabIdxByKey(3) = %d, want 2", got)
	}
	if got := TabIdxByKey("9"); got != -1 {
		t.Errorf("TabIdxByKey(9) = %d, want -1", got)
	}
}

func TestTabVisualWidth(t *testing.T) {
	tab := Tab{Name: "Budget", Key: "3"}
	if got := TabVisualWidth(tab, true); got != 8 {
		t.Errorf("active width = %d, want 8", got)
	}
	if got := TabVisualWidth(tab, false); got != 11 {
		t.Errorf("inactive width = %d, want 11", got)
	}
}

func TestFraction(t *testing.T) {
	tests := []struct {
		pct  string
		want float64
	}{
		{"0", 0},
		{"50", 0.5},
		{"100", 1},
		{"150", 1},
		{"-5", 0},
	}
	for _, tt := range tests {
		if got := Fraction(decimal.RequireFromString(tt.pct)); got != tt.want {
			t.Errorf("Fraction(%s) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestBudgetBarUndefined(t *testing.T) {
	line := model.BudgetLine{
		Budget:    model.BudgetCategory{Category: "Gifts"},
		Undefined: true,
	}
	out := BudgetBar(line, 10, 20)
	if !strings.Contains(out, "—") {
		t.Errorf("undefined line should show a dash, got %q", out)
	}
}

func TestHorizontalBarsScalesToPeak(t *testing.T) {
	out := HorizontalBars([]Bar{
		{Label: "Shopping", Value: 200, Text: "$200"},
		{Label: "Food", Value: 100, Text: "$100"},
	}, 40)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	first := strings.Count(lines[0], "█")
	second := strings.Count(lines[1], "█")
	if first != 2*second {
		t.Errorf("bar lengths %d and %d, want 2:1", first, second)
	}
}

func TestSparklineEmpty(t *testing.T) {
	if Sparkline(nil, theme.Active.Accent) != "" {
		t.Error("empty sparkline should render nothing")
	}
}

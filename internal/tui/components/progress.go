package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/pocket/internal/model"
	"github.com/theirongolddev/pocket/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// ProgressBar renders the loading bar with a trailing percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))
	b.WriteString(pctStyle.Render(fmt.Sprintf(" %.0f%%", pct*100)))
	return b.String()
}

// BudgetBar renders a labeled budget utilization bar. The fill is capped
// at 100% while the percentage label shows the real value.
func BudgetBar(line model.BudgetLine, labelW, barWidth int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.Tag(line.Budget.ColorTag)).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)
	label := labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncate(line.Budget.Category, labelW)))

	if line.Undefined {
		dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		return label + spaceStyle.Render(" ") + dim.Render(strings.Repeat("·", barWidth)) + spaceStyle.Render(" ") + dim.Render("   —")
	}

	color := t.Bucket(line.Bucket)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)

	return label +
		spaceStyle.Render(" ") +
		bar.ViewAs(Fraction(line.Percent)) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%4s%%", line.Percent.Round(0).String()))
}

// Fraction converts a percentage to a 0..1 fill ratio.
func Fraction(pct decimal.Decimal) float64 {
	f, _ := pct.Div(decimal.NewFromInt(100)).Float64()
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

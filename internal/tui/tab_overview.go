package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/pocket/internal/cli"
	"github.com/theirongolddev/pocket/internal/model"
	"github.com/theirongolddev/pocket/internal/pipeline"
	"github.com/theirongolddev/pocket/internal/tui/components"
	"github.com/theirongolddev/pocket/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const topCategories = 5

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	cf := a.cashflow

	budgetValue := "—"
	budgetColor := t.TextPrimary
	if !a.budget.Undefined && len(a.budget.Lines) > 0 {
		budgetValue = cli.FormatPercent(a.budget.Percent)
		budgetColor = t.Bucket(a.budget.Bucket)
	}

	netColor := t.Income
	if cf.Net.IsNegative() {
		netColor = t.Expense
	}

	metrics := []components.Metric{
		{Label: "Total Balance", Value: cli.FormatCurrency(pipeline.TotalBalance(a.ledger.Cards)),
			Delta: fmt.Sprintf("%d cards", len(a.ledger.Cards))},
		{Label: "Income", Value: cli.FormatCurrency(cf.Income), Color: t.Income,
			Delta: fmt.Sprintf("%d transactions", cf.IncomeCount)},
		{Label: "Expenses", Value: cli.FormatCurrency(cf.Expenses), Color: t.Expense,
			Delta: fmt.Sprintf("%d transactions", cf.ExpenseCount)},
		{Label: "Net", Value: cli.FormatSigned(cf.Net), Color: netColor},
		{Label: "Budget Used", Value: budgetValue, Color: budgetColor,
			Delta: cli.FormatCurrency(a.budget.Remaining) + " left"},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	widths := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Top Spending", a.renderTopCategories(components.CardInnerWidth(widths[0])), widths[0]),
		components.ContentCard("Insights", a.renderInsights(components.CardInnerWidth(widths[1])), widths[1]),
	}))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Daily Spending", a.renderDailyTrend(), cw))
	return b.String()
}

func (a App) renderTopCategories(w int) string {
	t := theme.Active
	if len(a.categories) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("No expenses in range")
	}

	cats := a.categories
	if len(cats) > topCategories {
		cats = cats[:topCategories]
	}

	bars := make([]components.Bar, 0, len(cats))
	for _, c := range cats {
		v, _ := c.Total.Float64()
		bars = append(bars, components.Bar{
			Label: c.Category,
			Value: v,
			Text:  fmt.Sprintf("%s %5s", cli.FormatCurrency(c.Total), c.SharePercent.Round(0).String()+"%"),
			Color: t.Expense,
		})
	}
	return components.HorizontalBars(bars, w)
}

func (a App) renderInsights(w int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(a.insights) == 0 {
		return mutedStyle.Render("Nothing to report")
	}

	lines := make([]string, 0, len(a.insights))
	for _, in := range a.insights {
		color := insightColor(t, in.Kind)
		marker := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true).Render("● ")
		title := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Render(in.Title)
		lines = append(lines, marker+title)
		lines = append(lines, mutedStyle.Render("  "+truncStr(in.Description, w-2)))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderDailyTrend() string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(a.daily) == 0 {
		return mutedStyle.Render("No transactions in range")
	}

	// daily is newest first; the sparkline reads left to right
	values := make([]float64, len(a.daily))
	for i, d := range a.daily {
		values[len(a.daily)-1-i], _ = d.Expenses.Float64()
	}
	first := a.daily[len(a.daily)-1].Date
	last := a.daily[0].Date

	return components.Sparkline(values, t.Accent) +
		mutedStyle.Render(fmt.Sprintf("  %s to %s · %d days", cli.FormatMonthDay(first), cli.FormatMonthDay(last), len(a.daily)))
}

func insightColor(t theme.Theme, k model.InsightKind) lipgloss.Color {
	switch k {
	case model.InsightPositive:
		return t.Income
	case model.InsightWarning:
		return t.Warning
	case model.InsightNegative:
		return t.Critical
	default:
		return t.Secondary
	}
}

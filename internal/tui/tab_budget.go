package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/pocket/internal/cli"
	"github.com/theirongolddev/pocket/internal/pipeline"
	"github.com/theirongolddev/pocket/internal/tui/components"
	"github.com/theirongolddev/pocket/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active
	s := a.budget
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(s.Lines) == 0 {
		return components.ContentCard("Budget", mutedStyle.Render("No budgets defined"), cw)
	}

	used := "—"
	if !s.Undefined {
		used = cli.FormatPercent(s.Percent)
	}
	metrics := []components.Metric{
		{Label: "Spent", Value: cli.FormatCurrency(s.TotalSpent), Color: t.Expense},
		{Label: "Limit", Value: cli.FormatCurrency(s.TotalLimit)},
		{Label: "Used", Value: used, Color: t.Bucket(s.Bucket)},
		{Label: "Over Budget", Value: fmt.Sprintf("%d", s.OverBudget)},
	}

	innerW := components.CardInnerWidth(cw)
	labelW := 0
	for _, l := range s.Lines {
		labelW = max(labelW, lipgloss.Width(l.Budget.Category))
	}
	if labelW > 24 {
		labelW = 24
	}
	const amountsW = 24
	barW := innerW - labelW - amountsW - 8
	if barW < 10 {
		barW = 10
	}

	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var body strings.Builder
	for i, l := range s.Lines {
		body.WriteString(components.BudgetBar(l, labelW, barW))
		body.WriteString(amountStyle.Render(fmt.Sprintf("  %*s", amountsW,
			cli.FormatCurrency(l.Budget.Spent)+" / "+cli.FormatCurrency(l.Budget.Limit))))
		if i < len(s.Lines)-1 {
			body.WriteString("\n")
		}
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Categories", body.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Share of Spending", a.renderShares(innerW), cw))
	return b.String()
}

func (a App) renderShares(w int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	shares, err := pipeline.ExpenseBreakdown(a.ledger.Budgets)
	if err != nil || len(shares) == 0 {
		return mutedStyle.Render("Nothing spent yet")
	}

	bars := make([]components.Bar, 0, len(shares))
	for _, s := range shares {
		v, _ := s.SharePercent.Float64()
		bars = append(bars, components.Bar{
			Label: s.Category,
			Value: v,
			Text:  s.SharePercent.Round(1).StringFixed(1) + "%",
			Color: t.Tag(s.ColorTag),
		})
	}
	return components.HorizontalBars(bars, w)
}

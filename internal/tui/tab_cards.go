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

const cardsPerRow = 3

func (a App) renderCardsTab(cw int) string {
	t := theme.Active
	cards := a.ledger.Cards

	if len(cards) == 0 {
		mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Cards", mutedStyle.Render("No cards on file"), cw)
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Total Balance", Value: cli.FormatCurrency(pipeline.TotalBalance(cards)), Color: t.AccentBright},
		{Label: "Cards", Value: fmt.Sprintf("%d", len(cards))},
	}, cw))

	for start := 0; start < len(cards); start += cardsPerRow {
		end := min(start+cardsPerRow, len(cards))
		widths := components.LayoutRow(cw, cardsPerRow)

		row := make([]string, 0, cardsPerRow)
		for i, c := range cards[start:end] {
			row = append(row, components.ContentCard(c.Type, renderCardBody(c), widths[i]))
		}
		b.WriteString("\n")
		b.WriteString(components.CardRow(row))
	}
	return b.String()
}

func renderCardBody(c model.Card) string {
	t := theme.Active

	numberStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	balanceStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	networkStyle := lipgloss.NewStyle().Foreground(t.Highlight).Background(t.Surface).Bold(true)

	rows := []struct{ label, value string }{
		{"Holder", c.Holder},
		{"Expires", c.Expiry},
		{"Daily", cli.FormatCurrency(c.DailyLimit)},
		{"Monthly", cli.FormatCurrency(c.MonthlyLimit)},
	}

	var b strings.Builder
	b.WriteString(numberStyle.Render(cli.MaskCard(c.LastFour)))
	b.WriteString("\n")
	b.WriteString(balanceStyle.Render(cli.FormatCurrency(c.Balance)))
	b.WriteString(labelStyle.Render("  "))
	b.WriteString(networkStyle.Render(c.Network))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-8s ", r.label)))
		b.WriteString(valueStyle.Render(r.value))
	}
	return b.String()
}

package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/pocket/internal/cli"
	"github.com/theirongolddev/pocket/internal/model"
	"github.com/theirongolddev/pocket/internal/tui/components"
	"github.com/theirongolddev/pocket/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// transactionsState holds the transactions tab state.
type transactionsState struct {
	cursor      int
	offset      int // scroll offset for the list
	searching   bool
	searchInput textinput.Model
	prevSearch  string // restored when a search is cancelled
}

func newSearchInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "title or merchant"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 40
	ti.SetValue(value)
	return ti
}

// updateSearch handles keys while the search input is focused.
// The query updates as the user types.
func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.txState.searching = false
		a.txState.searchInput.Blur()
		return a, nil

	case "esc":
		a.txState.searching = false
		a.txState.searchInput.Blur()
		a.query.Search = a.txState.prevSearch
		a.recompute()
		return a, nil
	}

	var cmd tea.Cmd
	a.txState.searchInput, cmd = a.txState.searchInput.Update(msg)
	if v := a.txState.searchInput.Value(); v != a.query.Search {
		a.query.Search = v
		a.txState.cursor = 0
		a.txState.offset = 0
		a.recompute()
	}
	return a, cmd
}

// updateTransactionsNav moves the list cursor. It reports whether key was used.
func (a *App) updateTransactionsNav(key string) bool {
	switch key {
	case "j", "down":
		if a.txState.cursor < len(a.filtered)-1 {
			a.txState.cursor++
		}
	case "k", "up":
		if a.txState.cursor > 0 {
			a.txState.cursor--
		}
	case "g", "home":
		a.txState.cursor = 0
		a.txState.offset = 0
	case "G", "end":
		a.txState.cursor = len(a.filtered) - 1
		if a.txState.cursor < 0 {
			a.txState.cursor = 0
		}
	default:
		return false
	}
	return true
}

func (a App) renderTransactionsTab(cw, h int) string {
	t := theme.Active
	ts := a.txState

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	incomeStyle := lipgloss.NewStyle().Foreground(t.Income).Background(t.Surface)
	expenseStyle := lipgloss.NewStyle().Foreground(t.Expense).Background(t.Surface)

	var b strings.Builder
	if ts.searching {
		b.WriteString(ts.searchInput.View())
		b.WriteString("\n\n")
	}

	if a.queryErr != nil {
		b.WriteString(expenseStyle.Render(a.queryErr.Error()))
		return components.ContentCard("Transactions", b.String(), cw)
	}
	if len(a.filtered) == 0 {
		b.WriteString(mutedStyle.Render("No transactions match the current filters"))
		return components.ContentCard("Transactions", b.String(), cw)
	}

	innerW := components.CardInnerWidth(cw)
	const dateW, amountW, catW = 14, 12, 14
	merchantW := (innerW - dateW - amountW - catW - 3) / 3
	titleW := innerW - dateW - amountW - catW - merchantW - 3
	if titleW < 10 {
		titleW = 10
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %-*s %-*s %-*s%*s",
		titleW, "Title", merchantW, "Merchant", catW, "Category", dateW, "Date", amountW, "Amount")))
	b.WriteString("\n")

	visible := h - 6 // card border, title, header, footer
	if ts.searching {
		visible -= 2
	}
	if visible < 3 {
		visible = 3
	}

	offset := ts.offset
	if ts.cursor < offset {
		offset = ts.cursor
	}
	if ts.cursor >= offset+visible {
		offset = ts.cursor - visible + 1
	}
	end := offset + visible
	if end > len(a.filtered) {
		end = len(a.filtered)
	}

	for i := offset; i < end; i++ {
		tx := a.filtered[i]
		line := fmt.Sprintf("%-*s %-*s %-*s %-*s",
			titleW, truncStr(tx.Title, titleW),
			merchantW, truncStr(tx.Merchant, merchantW),
			catW, truncStr(tx.Category, catW),
			dateW, cli.FormatMonthDay(tx.Date.In(a.loc))+" "+cli.FormatTime(tx.Date.In(a.loc)))
		amount := fmt.Sprintf("%*s", amountW, cli.FormatSigned(tx.SignedAmount()))

		style := rowStyle
		if i == ts.cursor {
			style = selectedStyle
		}
		amountStyle := expenseStyle
		if tx.Kind == model.KindIncome {
			amountStyle = incomeStyle
		}
		if i == ts.cursor {
			amountStyle = amountStyle.Background(t.SurfaceHover).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString(amountStyle.Render(amount))
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d/%d  net %s",
		ts.cursor+1, len(a.filtered), cli.FormatSigned(a.cashflow.Net))))

	title := fmt.Sprintf("Transactions · %s", a.rangeLabel())
	return components.ContentCard(title, b.String(), cw)
}

package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/pocket/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// Bar is one row of a HorizontalBars chart.
type Bar struct {
	Label string
	Value float64
	Text  string // right-hand value label
	Color lipgloss.Color
}

// HorizontalBars renders one labeled bar per row, scaled to the largest value.
func HorizontalBars(bars []Bar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW, textW := 0, 0
	peak := 0.0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
		textW = max(textW, lipgloss.Width(b.Text))
		peak = max(peak, b.Value)
	}
	if labelW > width/3 {
		labelW = width / 3
	}
	if peak == 0 {
		peak = 1
	}

	barW := width - labelW - textW - 2
	if barW < 4 {
		barW = 4
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, 0, len(bars))
	for _, b := range bars {
		n := int(b.Value / peak * float64(barW))
		if n < 1 && b.Value > 0 {
			n = 1
		}
		color := b.Color
		if color == "" {
			color = t.Accent
		}
		fill := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(strings.Repeat("█", n))
		lines = append(lines,
			labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncate(b.Label, labelW)))+
				spaceStyle.Render(" ")+
				fill+
				spaceStyle.Render(strings.Repeat(" ", barW-n+1))+
				textStyle.Render(fmt.Sprintf("%*s", textW, b.Text)))
	}
	return strings.Join(lines, "\n")
}

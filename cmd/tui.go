package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/pocket/internal/config"
	"github.com/theirongolddev/pocket/internal/tui"
	"github.com/theirongolddev/pocket/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	theme.SetActive(appCfg.Appearance.Theme)

	// Without this lipgloss may pick the Ascii profile and drop backgrounds.
	lipgloss.SetColorProfile(termenv.TrueColor)

	q, err := buildQuery(time.Now())
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.Options{
		DataDir:         flagDataDir,
		Location:        location(),
		Query:           q,
		Days:            flagDays,
		Sample:          flagSample,
		SampleWhenEmpty: appCfg.General.SampleWhenEmpty,
		NoCache:         flagNoCache,
		LimitOverrides:  config.LimitOverrides(appCfg),
		NeedSetup:       !config.Exists(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

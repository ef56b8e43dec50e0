// Package cmd implements the pocket CLI commands.
package cmd

import (
	"fmt"
	"sort"

	"github.com/theirongolddev/pocket/internal/config"
	"github.com/theirongolddev/pocket/internal/logger"
	"github.com/theirongolddev/pocket/internal/pipeline"
	"github.com/theirongolddev/pocket/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory:    %s\n", flagDataDir)
	fmt.Printf("    Default sort:      %s %s\n", cfg.General.DefaultSort, cfg.General.DefaultOrder)
	if cfg.General.DefaultDays > 0 {
		fmt.Printf("    Default range:     last %d days\n", cfg.General.DefaultDays)
	} else {
		fmt.Println("    Default range:     all dates")
	}
	fmt.Printf("    Timezone:          %s\n", location())
	fmt.Printf("    Sample when empty: %v\n", cfg.General.SampleWhenEmpty)
	fmt.Println()

	fmt.Println("  [Budget]")
	if len(cfg.Budget.Limits) == 0 {
		fmt.Println("    Limit overrides: none")
	} else {
		names := make([]string, 0, len(cfg.Budget.Limits))
		for name := range cfg.Budget.Limits {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("    %-18s $%.2f\n", name+":", cfg.Budget.Limits[name])
		}
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Cache]")
	fmt.Printf("    Path: %s\n", pipeline.CachePath())
	if cache, err := store.Open(pipeline.CachePath()); err != nil {
		logger.L().WithField("error", err).Debug("cache not readable")
		fmt.Println("    Status: unavailable")
	} else {
		defer func() { _ = cache.Close() }()
		c, err := cache.Counts()
		if err != nil {
			return fmt.Errorf("reading cache: %w", err)
		}
		fmt.Printf("    Files: %d  Transactions: %d  Budgets: %d  Cards: %d\n",
			c.Files, c.Transactions, c.Budgets, c.Cards)
	}
	fmt.Println()

	fmt.Println("  Run `pocket setup` to reconfigure.")
	return nil
}

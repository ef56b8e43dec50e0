package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/pocket/internal/config"
	"github.com/theirongolddev/pocket/internal/source"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)
	cfg := appCfg

	files, _ := source.ScanDir(flagDataDir)

	fmt.Println()
	fmt.Println("  Welcome to pocket!")
	fmt.Println()
	if len(files) > 0 {
		fmt.Printf("  Found %d ledger files in %s\n\n", len(files), flagDataDir)
	}

	// 1. Data directory
	fmt.Println("  1. Ledger directory")
	fmt.Printf("     Current: %s\n", flagDataDir)
	fmt.Print("     > ")
	if dir := readLine(reader); dir != "" {
		cfg.General.DataDir = dir
	}
	fmt.Println()

	// 2. Sort
	fmt.Println("  2. Default sort")
	fmt.Println("     (1) Newest first [default]")
	fmt.Println("     (2) Largest amount first")
	fmt.Println("     (3) Title A-Z")
	fmt.Print("     > ")
	switch readLine(reader) {
	case "2":
		cfg.General.DefaultSort, cfg.General.DefaultOrder = "amount", "desc"
	case "3":
		cfg.General.DefaultSort, cfg.General.DefaultOrder = "title", "asc"
	default:
		cfg.General.DefaultSort, cfg.General.DefaultOrder = "date", "desc"
	}
	fmt.Println()

	// 3. Range
	fmt.Println("  3. Default date range")
	fmt.Println("     (1) All dates [default]")
	fmt.Println("     (2) Last 7 days")
	fmt.Println("     (3) Last 30 days")
	fmt.Print("     > ")
	switch readLine(reader) {
	case "2":
		cfg.General.DefaultDays = 7
	case "3":
		cfg.General.DefaultDays = 30
	default:
		cfg.General.DefaultDays = 0
	}
	fmt.Println()

	// 4. Theme
	fmt.Println("  4. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	switch readLine(reader) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "tokyo-night"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `pocket setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func readLine(r *bufio.Reader) string {
	s, _ := r.ReadString('\n')
	return strings.TrimSpace(s)
}

package cmd

import (
	"fmt"

	"github.com/theirongolddev/pocket/internal/cli"
	"github.com/theirongolddev/pocket/internal/pipeline"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Budget usage per category",
	RunE:  runBudget,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, _ []string) error {
	ledger, err := loadData()
	if err != nil {
		return err
	}
	if len(ledger.Budgets) == 0 {
		fmt.Println("\n  No budgets found.")
		return nil
	}

	s := pipeline.BudgetOverview(ledger.Budgets)

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET"))
	fmt.Println()

	rows := make([][]string, 0, len(s.Lines)+2)
	for _, l := range s.Lines {
		used, bar, status := "—", "", "—"
		if !l.Undefined {
			used = cli.FormatPercent(l.Percent)
			bar = cli.RenderBudgetBar(l.Percent, l.Bucket, 20)
			status = cli.BucketStyle(l.Bucket).Render(l.Bucket.String())
		}
		rows = append(rows, []string{
			l.Budget.Category,
			cli.FormatCurrency(l.Budget.Spent),
			cli.FormatCurrency(l.Budget.Limit),
			used,
			bar,
			status,
		})
	}

	totalUsed, totalStatus := "—", "—"
	if !s.Undefined {
		totalUsed = cli.FormatPercent(s.Percent)
		totalStatus = cli.BucketStyle(s.Bucket).Render(s.Bucket.String())
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"Total",
		cli.FormatCurrency(s.TotalSpent),
		cli.FormatCurrency(s.TotalLimit),
		totalUsed,
		"",
		totalStatus,
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Spent", "Limit", "Used", "", "Status"},
		Rows:    rows,
	}))

	fmt.Println()
	if s.Remaining.IsNegative() {
		fmt.Printf("  Over budget by %s\n", cli.FormatCurrency(s.Remaining.Neg()))
	} else {
		fmt.Printf("  %s remaining\n", cli.FormatCurrency(s.Remaining))
	}
	if s.OverBudget > 0 {
		fmt.Printf("  %d %s over its limit\n", s.OverBudget, plural(s.OverBudget, "category", "categories"))
	}

	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/pocket/internal/cli"
	"github.com/theirongolddev/pocket/internal/pipeline"

	"github.com/spf13/cobra"
)

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Share of spending per category",
	RunE:  runBreakdown,
}

func init() {
	rootCmd.AddCommand(breakdownCmd)
}

func runBreakdown(_ *cobra.Command, _ []string) error {
	ledger, err := loadData()
	if err != nil {
		return err
	}
	if ledger.Len() == 0 {
		fmt.Println("\n  No ledger records found.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("EXPENSE BREAKDOWN"))
	fmt.Println()

	shares, err := pipeline.ExpenseBreakdown(ledger.Budgets)
	switch {
	case errors.Is(err, pipeline.ErrDivisionByZero):
		fmt.Println("  Nothing spent against any budget yet.")
	case err != nil:
		return err
	case len(shares) > 0:
		rows := make([][]string, 0, len(shares))
		for _, s := range shares {
			rows = append(rows, []string{s.Category, cli.FormatCurrency(s.Spent), cli.FormatPercent(s.SharePercent)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "By Budget",
			Headers: []string{"Category", "Spent", "Share"},
			Rows:    rows,
		}))
	}

	q, err := buildQuery(time.Now())
	if err != nil {
		return err
	}
	txs, err := pipeline.Query(ledger.Transactions, q)
	if err != nil {
		return err
	}

	cats := pipeline.CategoryTotals(txs)
	if len(cats) == 0 {
		fmt.Println("\n  No expenses match the current filters.")
		return nil
	}

	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{
			c.Category,
			cli.FormatNumber(int64(c.Transactions)),
			cli.FormatCurrency(c.Total),
			cli.FormatPercent(c.SharePercent),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By Transaction Category  " + describeQuery(q),
		Headers: []string{"Category", "Count", "Spent", "Share"},
		Rows:    rows,
	}))

	return nil
}

package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/pocket/internal/cli"
	"github.com/theirongolddev/pocket/internal/pipeline"

	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Spending per calendar day",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
	ledger, err := loadData()
	if err != nil {
		return err
	}
	if len(ledger.Transactions) == 0 {
		fmt.Println("\n  No transactions found.")
		return nil
	}

	q, err := buildQuery(time.Now())
	if err != nil {
		return err
	}
	txs, err := pipeline.Query(ledger.Transactions, q)
	if err != nil {
		return err
	}

	days := pipeline.DailySpending(txs, location())
	if len(days) == 0 {
		fmt.Println("\n  No data for the selected period.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("DAILY SPENDING  " + describeQuery(q)))
	fmt.Println()

	rows := make([][]string, 0, len(days))
	spark := make([]float64, len(days))
	for i, d := range days {
		rows = append(rows, []string{
			d.Date.Format("2006-01-02"),
			d.Date.Weekday().String()[:3],
			cli.FormatNumber(int64(d.Transactions)),
			cli.FormatCurrency(d.Expenses),
			cli.FormatCurrency(d.Income),
		})
		// oldest first for the sparkline
		spark[len(days)-1-i], _ = d.Expenses.Float64()
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Count", "Spent", "Income"},
		Rows:    rows,
	}))
	fmt.Printf("\n  Spending  %s\n", cli.RenderSparkline(spark))

	return nil
}

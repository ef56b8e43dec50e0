package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/pocket/internal/cli"
	"github.com/theirongolddev/pocket/internal/pipeline"

	"github.com/spf13/cobra"
)

func runOverview(_ *cobra.Command, _ []string) error {
	ledger, err := loadData()
	if err != nil {
		return err
	}
	if ledger.Len() == 0 {
		fmt.Println("\n  No ledger records found.")
		fmt.Printf("  Add .jsonl files to %s or run with --sample.\n", flagDataDir)
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

	cf := pipeline.Cashflow(txs)
	budget := pipeline.BudgetOverview(ledger.Budgets)

	fmt.Println()
	fmt.Println(cli.RenderTitle("POCKET  " + describeQuery(q)))
	fmt.Println()

	budgetUsed := "—"
	if !budget.Undefined {
		budgetUsed = fmt.Sprintf("%s of %s (%s)",
			cli.FormatCurrency(budget.TotalSpent),
			cli.FormatCurrency(budget.TotalLimit),
			cli.FormatPercent(budget.Percent))
	}

	rows := [][]string{
		{"Total Balance", cli.FormatCurrency(pipeline.TotalBalance(ledger.Cards))},
		{"Cards", cli.FormatNumber(int64(len(ledger.Cards)))},
		{"---"},
		{"Transactions", cli.FormatNumber(int64(cf.Transactions))},
		{"Income", cli.FormatCurrency(cf.Income)},
		{"Expenses", cli.FormatCurrency(cf.Expenses)},
		{"Net", cli.FormatSigned(cf.Net)},
		{"---"},
		{"Budget Used", budgetUsed},
		{"Over Budget", cli.FormatNumber(int64(budget.OverBudget))},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	cats := pipeline.CategoryTotals(txs)
	if len(cats) > 0 {
		fmt.Println()
		top := make([][]string, 0, 5)
		for i, c := range cats {
			if i == 5 {
				break
			}
			top = append(top, []string{c.Category, cli.FormatCurrency(c.Total), cli.FormatPercent(c.SharePercent)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Top Spending",
			Headers: []string{"Category", "Spent", "Share"},
			Rows:    top,
		}))
	}

	return nil
}

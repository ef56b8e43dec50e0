package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/pocket/internal/cli"
	"github.com/theirongolddev/pocket/internal/pipeline"

	"github.com/spf13/cobra"
)

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "Search, filter, and sort transactions",
	RunE:    runTransactions,
}

var transactionsLimit int

func init() {
	transactionsCmd.Flags().IntVarP(&transactionsLimit, "limit", "l", 50, "Number of transactions to show (0 = all)")
	rootCmd.AddCommand(transactionsCmd)
}

func runTransactions(_ *cobra.Command, _ []string) error {
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
	if len(txs) == 0 {
		fmt.Println("\n  No transactions match the current filters.")
		return nil
	}

	cf := pipeline.Cashflow(txs)
	total := len(txs)
	if transactionsLimit > 0 && len(txs) > transactionsLimit {
		txs = txs[:transactionsLimit]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TRANSACTIONS  %s (showing %d of %d)", describeQuery(q), len(txs), total)))
	fmt.Println()

	loc := location()
	rows := make([][]string, 0, len(txs)+2)
	for _, t := range txs {
		local := t.Date.In(loc)
		rows = append(rows, []string{
			truncate(t.Title, 24),
			truncate(t.Merchant, 18),
			t.Category,
			cli.FormatDate(local),
			cli.FormatTime(local),
			cli.RenderAmount(t),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Net", "", "", "", "", cli.FormatSigned(cf.Net)})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Title", "Merchant", "Category", "Date", "Time", "Amount"},
		Rows:    rows,
	}))

	return nil
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}

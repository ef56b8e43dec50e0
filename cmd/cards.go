package cmd

import (
	"fmt"

	"github.com/theirongolddev/pocket/internal/cli"
	"github.com/theirongolddev/pocket/internal/pipeline"

	"github.com/spf13/cobra"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Cards, balances, and limits",
	RunE:  runCards,
}

func init() {
	rootCmd.AddCommand(cardsCmd)
}

func runCards(_ *cobra.Command, _ []string) error {
	ledger, err := loadData()
	if err != nil {
		return err
	}
	if len(ledger.Cards) == 0 {
		fmt.Println("\n  No cards found.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CARDS"))
	fmt.Println()

	rows := make([][]string, 0, len(ledger.Cards)+2)
	for _, c := range ledger.Cards {
		rows = append(rows, []string{
			c.Type,
			cli.MaskCard(c.LastFour),
			c.Network,
			c.Expiry,
			cli.FormatCurrency(c.DailyLimit),
			cli.FormatCurrency(c.MonthlyLimit),
			cli.FormatCurrency(c.Balance),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total Balance", "", "", "", "", "", cli.FormatCurrency(pipeline.TotalBalance(ledger.Cards))})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Card", "Number", "Network", "Expires", "Daily", "Monthly", "Balance"},
		Rows:    rows,
	}))

	return nil
}

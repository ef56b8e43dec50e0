package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/pocket/internal/cli"
	"github.com/theirongolddev/pocket/internal/model"
	"github.com/theirongolddev/pocket/internal/pipeline"

	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Budget alerts and spending observations",
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(_ *cobra.Command, _ []string) error {
	ledger, err := loadData()
	if err != nil {
		return err
	}

	q, err := buildQuery(time.Now())
	if err != nil {
		return err
	}
	txs, err := pipeline.Query(ledger.Transactions, q)
	if err != nil {
		return err
	}

	insights := pipeline.Insights(ledger.Budgets, txs)
	if len(insights) == 0 {
		fmt.Println("\n  Nothing to report.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("INSIGHTS"))
	fmt.Println()

	for _, in := range insights {
		fmt.Printf("  %s %s\n", insightMarker(in.Kind), in.Title)
		fmt.Printf("    %s\n\n", cli.Muted(in.Description))
	}
	return nil
}

func insightMarker(k model.InsightKind) string {
	switch k {
	case model.InsightPositive:
		return cli.BucketStyle(model.BucketNormal).Render("▲")
	case model.InsightWarning:
		return cli.BucketStyle(model.BucketWarning).Render("●")
	case model.InsightNegative:
		return cli.BucketStyle(model.BucketCritical).Render("▼")
	default:
		return cli.Muted("○")
	}
}

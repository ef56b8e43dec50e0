package pipeline

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/pocket/internal/model"
)

// Insights derives short observations from budgets and transactions:
// alerts for categories past the warning threshold or over their limit,
// the cashflow direction, and the largest single expense.
func Insights(budgets []model.BudgetCategory, txs []model.Transaction) []model.Insight {
	var out []model.Insight

	for _, b := range budgets {
		pct, err := PercentUsed(b.Spent, b.Limit)
		if err != nil {
			continue
		}
		switch {
		case pct.GreaterThan(hundred):
			out = append(out, model.Insight{
				Kind:  model.InsightNegative,
				Title: "Over Budget",
				Description: fmt.Sprintf("You've spent %s of your %s %s budget.",
					dollars(b.Spent), dollars(b.Limit), b.Category),
			})
		case Classify(pct) != model.BucketNormal:
			out = append(out, model.Insight{
				Kind:  model.InsightWarning,
				Title: "Budget Alert",
				Description: fmt.Sprintf("You've used %s%% of your %s budget.",
					pct.Round(0).String(), strings.ToLower(b.Category)),
			})
		}
	}

	if len(txs) == 0 {
		return out
	}

	cf := Cashflow(txs)
	switch {
	case cf.Net.IsPositive():
		out = append(out, model.Insight{
			Kind:        model.InsightPositive,
			Title:       "Positive Cashflow",
			Description: fmt.Sprintf("Income exceeds spending by %s.", dollars(cf.Net)),
		})
	case cf.Net.IsNegative():
		out = append(out, model.Insight{
			Kind:        model.InsightNegative,
			Title:       "Spending Exceeds Income",
			Description: fmt.Sprintf("You spent %s more than you earned.", dollars(cf.Net.Neg())),
		})
	}

	if largest, ok := largestExpense(txs); ok {
		desc := fmt.Sprintf("%s: %s", largest.Title, dollars(largest.Amount))
		if largest.Merchant != "" {
			desc = fmt.Sprintf("%s at %s: %s", largest.Title, largest.Merchant, dollars(largest.Amount))
		}
		out = append(out, model.Insight{
			Kind:        model.InsightNeutral,
			Title:       "Largest Expense",
			Description: desc,
		})
	}

	return out
}

// largestExpense returns the first expense with the greatest amount.
func largestExpense(txs []model.Transaction) (model.Transaction, bool) {
	var (
		best  model.Transaction
		found bool
	)
	for _, t := range txs {
		if t.Kind != model.KindExpense {
			continue
		}
		if !found || t.Amount.GreaterThan(best.Amount) {
			best = t
			found = true
		}
	}
	return best, found
}

func dollars(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

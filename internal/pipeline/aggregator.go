// Package pipeline loads ledger data and derives transaction views and
// budget statistics from it.
package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/pocket/internal/model"
)

var (
	hundred           = decimal.NewFromInt(100)
	criticalThreshold = decimal.NewFromInt(90)
	warningThreshold  = decimal.NewFromInt(75)
)

// TotalSpent sums Spent across budgets. Empty input yields zero.
func TotalSpent(budgets []model.BudgetCategory) decimal.Decimal {
	total := decimal.Zero
	for _, b := range budgets {
		total = total.Add(b.Spent)
	}
	return total
}

// TotalLimit sums Limit across budgets. Empty input yields zero.
func TotalLimit(budgets []model.BudgetCategory) decimal.Decimal {
	total := decimal.Zero
	for _, b := range budgets {
		total = total.Add(b.Limit)
	}
	return total
}

// PercentUsed returns spent/limit*100. The result is unbounded above 100.
// A zero limit returns ErrDivisionByZero.
func PercentUsed(spent, limit decimal.Decimal) (decimal.Decimal, error) {
	if limit.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: limit is zero", ErrDivisionByZero)
	}
	return spent.Mul(hundred).Div(limit), nil
}

// Classify buckets a usage percentage: above 90 is critical, above 75 is
// warning. Both boundaries themselves fall in the lower bucket.
func Classify(pct decimal.Decimal) model.Bucket {
	switch {
	case pct.GreaterThan(criticalThreshold):
		return model.BucketCritical
	case pct.GreaterThan(warningThreshold):
		return model.BucketWarning
	default:
		return model.BucketNormal
	}
}

// BudgetOverview computes per-category usage and the overall totals.
// Categories with a zero limit are marked Undefined instead of failing.
func BudgetOverview(budgets []model.BudgetCategory) model.BudgetSummary {
	summary := model.BudgetSummary{
		Lines:      make([]model.BudgetLine, 0, len(budgets)),
		TotalSpent: TotalSpent(budgets),
		TotalLimit: TotalLimit(budgets),
	}

	for _, b := range budgets {
		line := model.BudgetLine{Budget: b}
		pct, err := PercentUsed(b.Spent, b.Limit)
		if err != nil {
			line.Undefined = true
		} else {
			line.Percent = pct
			line.Bucket = Classify(pct)
		}
		if b.Spent.GreaterThan(b.Limit) {
			summary.OverBudget++
		}
		summary.Lines = append(summary.Lines, line)
	}

	pct, err := PercentUsed(summary.TotalSpent, summary.TotalLimit)
	if err != nil {
		summary.Undefined = true
	} else {
		summary.Percent = pct
		summary.Bucket = Classify(pct)
	}
	summary.Remaining = summary.TotalLimit.Sub(summary.TotalSpent)

	return summary
}

// WithLimitOverrides returns a copy of budgets where each category found in
// limits (matched ignoring case) takes the overriding limit.
func WithLimitOverrides(budgets []model.BudgetCategory, limits map[string]decimal.Decimal) []model.BudgetCategory {
	out := make([]model.BudgetCategory, len(budgets))
	copy(out, budgets)
	if len(limits) == 0 {
		return out
	}

	lower := make(map[string]decimal.Decimal, len(limits))
	for k, v := range limits {
		lower[strings.ToLower(k)] = v
	}
	for i := range out {
		if v, ok := lower[strings.ToLower(out[i].Category)]; ok {
			out[i].Limit = v
		}
	}
	return out
}

// ExpenseBreakdown computes each budget category's share of total spending,
// largest first. It fails with ErrDivisionByZero when budgets exist but
// nothing has been spent.
func ExpenseBreakdown(budgets []model.BudgetCategory) ([]model.ShareStats, error) {
	if len(budgets) == 0 {
		return nil, nil
	}

	total := TotalSpent(budgets)
	shares := make([]model.ShareStats, 0, len(budgets))
	for _, b := range budgets {
		pct, err := PercentUsed(b.Spent, total)
		if err != nil {
			return nil, fmt.Errorf("share of %s: %w", b.Category, err)
		}
		shares = append(shares, model.ShareStats{
			Category:     b.Category,
			Spent:        b.Spent,
			SharePercent: pct,
			ColorTag:     b.ColorTag,
		})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Spent.GreaterThan(shares[j].Spent)
	})
	return shares, nil
}

// CategoryTotals sums expenses per category (matched ignoring case), largest
// first with ties broken by name. Income is excluded.
func CategoryTotals(txs []model.Transaction) []model.CategoryStats {
	catMap := make(map[string]*model.CategoryStats)
	total := decimal.Zero

	for _, t := range txs {
		if t.Kind != model.KindExpense {
			continue
		}
		key := strings.ToLower(t.Category)
		cs, ok := catMap[key]
		if !ok {
			cs = &model.CategoryStats{Category: t.Category, Total: decimal.Zero}
			catMap[key] = cs
		}
		cs.Total = cs.Total.Add(t.Amount)
		cs.Transactions++
		total = total.Add(t.Amount)
	}

	cats := make([]model.CategoryStats, 0, len(catMap))
	for _, cs := range catMap {
		if pct, err := PercentUsed(cs.Total, total); err == nil {
			cs.SharePercent = pct
		}
		cats = append(cats, *cs)
	}
	sort.Slice(cats, func(i, j int) bool {
		if !cats[i].Total.Equal(cats[j].Total) {
			return cats[i].Total.GreaterThan(cats[j].Total)
		}
		return strings.ToLower(cats[i].Category) < strings.ToLower(cats[j].Category)
	})
	return cats
}

// Cashflow totals income and expenses over txs.
func Cashflow(txs []model.Transaction) model.CashflowStats {
	stats := model.CashflowStats{Income: decimal.Zero, Expenses: decimal.Zero, Net: decimal.Zero}
	for _, t := range txs {
		stats.Transactions++
		switch t.Kind {
		case model.KindIncome:
			stats.Income = stats.Income.Add(t.Amount)
			stats.IncomeCount++
		case model.KindExpense:
			stats.Expenses = stats.Expenses.Add(t.Amount)
			stats.ExpenseCount++
		}
		stats.Net = stats.Net.Add(t.SignedAmount())
	}
	return stats
}

// DailySpending groups txs by calendar day in loc, most recent first.
func DailySpending(txs []model.Transaction, loc *time.Location) []model.DailyStats {
	dayMap := make(map[string]*model.DailyStats)

	for _, t := range txs {
		local := t.Date.In(loc)
		dayKey := local.Format("2006-01-02")
		ds, ok := dayMap[dayKey]
		if !ok {
			y, m, d := local.Date()
			ds = &model.DailyStats{
				Date:     time.Date(y, m, d, 0, 0, 0, 0, loc),
				Expenses: decimal.Zero,
				Income:   decimal.Zero,
			}
			dayMap[dayKey] = ds
		}
		ds.Transactions++
		if t.Kind == model.KindIncome {
			ds.Income = ds.Income.Add(t.Amount)
		} else {
			ds.Expenses = ds.Expenses.Add(t.Amount)
		}
	}

	days := make([]model.DailyStats, 0, len(dayMap))
	for _, ds := range dayMap {
		days = append(days, *ds)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return days
}

// TotalBalance sums the balances of all cards.
func TotalBalance(cards []model.Card) decimal.Decimal {
	total := decimal.Zero
	for _, c := range cards {
		total = total.Add(c.Balance)
	}
	return total
}

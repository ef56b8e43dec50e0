package model

import "github.com/shopspring/decimal"

// BudgetCategory is a named spending bucket. Spent may exceed Limit.
type BudgetCategory struct {
	ID       string
	Category string
	Limit    decimal.Decimal
	Spent    decimal.Decimal
	ColorTag string
}

// Bucket classifies how much of a budget has been used.
type Bucket int

const (
	BucketNormal Bucket = iota
	BucketWarning
	BucketCritical
)

func (b Bucket) String() string {
	switch b {
	case BucketWarning:
		return "warning"
	case BucketCritical:
		return "critical"
	default:
		return "normal"
	}
}

// BudgetLine is one category row of a budget overview.
// Undefined is set when the limit is zero and no percentage exists.
type BudgetLine struct {
	Budget    BudgetCategory
	Percent   decimal.Decimal
	Bucket    Bucket
	Undefined bool
}

// BudgetSummary holds per-category usage plus the overall totals.
type BudgetSummary struct {
	Lines      []BudgetLine
	TotalSpent decimal.Decimal
	TotalLimit decimal.Decimal
	Percent    decimal.Decimal
	Bucket     Bucket
	Undefined  bool
	OverBudget int // categories with spent > limit
	Remaining  decimal.Decimal
}

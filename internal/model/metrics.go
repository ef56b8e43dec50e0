package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashflowStats holds income and spending totals over a set of transactions.
type CashflowStats struct {
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	Net          decimal.Decimal
	Transactions int
	IncomeCount  int
	ExpenseCount int
}

// DailyStats holds spending for a single calendar day.
type DailyStats struct {
	Date         time.Time
	Expenses     decimal.Decimal
	Income       decimal.Decimal
	Transactions int
}

// CategoryStats holds the expense total for one category.
type CategoryStats struct {
	Category     string
	Total        decimal.Decimal
	Transactions int
	SharePercent decimal.Decimal
}

// ShareStats is a budget category's share of total spending.
type ShareStats struct {
	Category     string
	Spent        decimal.Decimal
	SharePercent decimal.Decimal
	ColorTag     string
}

// InsightKind sets the tone of an insight.
type InsightKind string

const (
	InsightPositive InsightKind = "positive"
	InsightWarning  InsightKind = "warning"
	InsightNegative InsightKind = "negative"
	InsightNeutral  InsightKind = "neutral"
)

// Insight is a short derived observation about the ledger.
type Insight struct {
	Kind        InsightKind
	Title       string
	Description string
}

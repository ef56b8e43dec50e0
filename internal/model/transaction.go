// Package model defines the ledger records and derived views shared by the pipeline, store, and UI layers.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind distinguishes money going out from money coming in.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

// Transaction is a single recorded monetary event.
// Amount is always non-negative; Kind carries the direction.
type Transaction struct {
	ID       string
	Title    string
	Amount   decimal.Decimal
	Date     time.Time
	Kind     Kind
	Category string
	Merchant string
}

// SignedAmount returns +Amount for income and -Amount for expenses.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == KindIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// Card is a payment card with its current balance and spending limits.
type Card struct {
	ID           string
	Type         string // e.g. "Platinum", "Gold"
	LastFour     string
	Holder       string
	Expiry       string // MM/YY
	Balance      decimal.Decimal
	Network      string
	DailyLimit   decimal.Decimal
	MonthlyLimit decimal.Decimal
}

// Ledger is everything a data source supplies, in source order.
type Ledger struct {
	Transactions []Transaction
	Budgets      []BudgetCategory
	Cards        []Card
}

// Len returns the total number of records.
func (l Ledger) Len() int {
	return len(l.Transactions) + len(l.Budgets) + len(l.Cards)
}

// Append adds all records of other to l.
func (l *Ledger) Append(other Ledger) {
	l.Transactions = append(l.Transactions, other.Transactions...)
	l.Budgets = append(l.Budgets, other.Budgets...)
	l.Cards = append(l.Cards, other.Cards...)
}

package source

import "github.com/shopspring/decimal"

// Record types recognized in the "type" field of a ledger line.
const (
	TypeTransaction = "transaction"
	TypeBudget      = "budget"
	TypeCard        = "card"
)

// rawEnvelope reads only the discriminator of a ledger line.
type rawEnvelope struct {
	Type string `json:"type"`
}

// RawTransaction is a transaction line as written in a ledger file.
type RawTransaction struct {
	ID       string          `json:"id"`
	Title    string          `json:"title" validate:"required"`
	Amount   decimal.Decimal `json:"amount" validate:"gte=0"`
	Date     string          `json:"date" validate:"required"`
	Kind     string          `json:"kind" validate:"required,oneof=expense income"`
	Category string          `json:"category" validate:"required"`
	Merchant string          `json:"merchant"`
}

// RawBudget is a budget category line.
type RawBudget struct {
	ID       string          `json:"id"`
	Category string          `json:"category" validate:"required"`
	Limit    decimal.Decimal `json:"limit" validate:"gte=0"`
	Spent    decimal.Decimal `json:"spent" validate:"gte=0"`
	Color    string          `json:"color"`
}

// RawCard is a payment card line.
type RawCard struct {
	ID           string          `json:"id"`
	CardType     string          `json:"card_type" validate:"required"`
	LastFour     string          `json:"last_four" validate:"required,len=4,numeric"`
	Holder       string          `json:"holder"`
	Expiry       string          `json:"expiry" validate:"omitempty,len=5"`
	Balance      decimal.Decimal `json:"balance"`
	Network      string          `json:"network"`
	DailyLimit   decimal.Decimal `json:"daily_limit" validate:"gte=0"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit" validate:"gte=0"`
}

// DiscoveredFile is a ledger file found during directory scanning.
type DiscoveredFile struct {
	Path string
	Name string // path relative to the data directory
}

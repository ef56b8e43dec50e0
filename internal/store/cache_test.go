package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/pocket/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "nested", "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func testLedger() model.Ledger {
	return model.Ledger{
		Transactions: []model.Transaction{
			{
				ID: "1", Title: "Grocery Shopping", Amount: decimal.RequireFromString("78.35"),
				Date: time.Date(2025, 8, 15, 14, 30, 0, 0, time.UTC), Kind: model.KindExpense,
				Category: "Food", Merchant: "Whole Foods",
			},
			{
				ID: "2", Title: "Monthly Salary", Amount: decimal.RequireFromString("4800"),
				Date: time.Date(2025, 8, 10, 9, 15, 0, 0, time.UTC), Kind: model.KindIncome,
				Category: "Salary",
			},
		},
		Budgets: []model.BudgetCategory{
			{ID: "b1", Category: "Shopping", Limit: decimal.NewFromInt(400), Spent: decimal.RequireFromString("325.75"), ColorTag: "accent"},
		},
		Cards: []model.Card{
			{
				ID: "c1", Type: "Platinum", LastFour: "4321", Holder: "Alex Johnson", Expiry: "09/28",
				Balance: decimal.RequireFromString("3452.78"), Network: "Visa",
				DailyLimit: decimal.NewFromInt(1000), MonthlyLimit: decimal.NewFromInt(5000),
			},
		},
	}
}

func TestCache_SaveAndLoadFile(t *testing.T) {
	c := openTestCache(t)
	want := testLedger()

	require.NoError(t, c.SaveFile("/data/a.jsonl", want, 2, 111, 222))

	got, err := c.LoadFile("/data/a.jsonl")
	require.NoError(t, err)

	require.Len(t, got.Transactions, 2)
	assert.Equal(t, "1", got.Transactions[0].ID)
	assert.Equal(t, "2", got.Transactions[1].ID)
	assert.True(t, got.Transactions[0].Amount.Equal(want.Transactions[0].Amount))
	assert.True(t, got.Transactions[0].Date.Equal(want.Transactions[0].Date))
	assert.Equal(t, model.KindIncome, got.Transactions[1].Kind)

	require.Len(t, got.Budgets, 1)
	assert.Equal(t, "325.75", got.Budgets[0].Spent.String())
	assert.Equal(t, "accent", got.Budgets[0].ColorTag)

	require.Len(t, got.Cards, 1)
	assert.Equal(t, "3452.78", got.Cards[0].Balance.String())
	assert.Equal(t, "5000", got.Cards[0].MonthlyLimit.String())

	tracked, err := c.GetTrackedFiles()
	require.NoError(t, err)
	assert.Equal(t, FileInfo{MtimeNs: 111, SizeBytes: 222, ParseErrors: 2}, tracked["/data/a.jsonl"])
}

func TestCache_SaveFileReplaces(t *testing.T) {
	c := openTestCache(t)
	l := testLedger()
	require.NoError(t, c.SaveFile("/data/a.jsonl", l, 0, 1, 1))

	l.Transactions = l.Transactions[:1]
	l.Cards = nil
	require.NoError(t, c.SaveFile("/data/a.jsonl", l, 0, 2, 2))

	n, err := c.Counts()
	require.NoError(t, err)
	assert.Equal(t, Counts{Files: 1, Transactions: 1, Budgets: 1, Cards: 0}, n)
}

func TestCache_DeleteFile(t *testing.T) {
	c := openTestCache(t)
	require.NoError(t, c.SaveFile("/data/a.jsonl", testLedger(), 0, 1, 1))
	require.NoError(t, c.SaveFile("/data/b.jsonl", testLedger(), 0, 1, 1))

	require.NoError(t, c.DeleteFile("/data/a.jsonl"))

	n, err := c.Counts()
	require.NoError(t, err)
	assert.Equal(t, 1, n.Files)
	assert.Equal(t, 2, n.Transactions)

	got, err := c.LoadFile("/data/a.jsonl")
	require.NoError(t, err)
	assert.Zero(t, got.Len())
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	c, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, c.SaveFile("/data/a.jsonl", testLedger(), 0, 1, 1))
	require.NoError(t, c.Close())

	c, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	n, err := c.Counts()
	require.NoError(t, err)
	assert.Equal(t, 2, n.Transactions)
}

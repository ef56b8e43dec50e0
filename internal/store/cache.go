// Package store provides a SQLite-backed cache of parsed ledger files.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/pocket/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache provides SQLite-backed ledger caching keyed by source file.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path and applies
// any pending schema migrations.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("migrating cache db: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a file, plus the number of
// lines that failed to parse when it was cached.
type FileInfo struct {
	MtimeNs     int64
	SizeBytes   int64
	ParseErrors int
}

// GetTrackedFiles returns a map of file_path -> FileInfo for all tracked files.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes, parse_errors FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes, &fi.ParseErrors); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// SaveFile replaces everything cached for filePath with ledger and updates
// its tracking info, in one transaction.
func (c *Cache) SaveFile(filePath string, ledger model.Ledger, parseErrors int, mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteRows(tx, filePath); err != nil {
		return err
	}

	for i, t := range ledger.Transactions {
		_, err = tx.Exec(`INSERT INTO transactions
			(file_path, position, id, title, amount, occurred_at, kind, category, merchant)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			filePath, i, t.ID, t.Title, t.Amount.String(), t.Date.Format(time.RFC3339Nano),
			string(t.Kind), t.Category, t.Merchant,
		)
		if err != nil {
			return fmt.Errorf("caching transaction %s: %w", t.ID, err)
		}
	}

	for i, b := range ledger.Budgets {
		_, err = tx.Exec(`INSERT INTO budgets
			(file_path, position, id, category, limit_amount, spent, color_tag)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			filePath, i, b.ID, b.Category, b.Limit.String(), b.Spent.String(), b.ColorTag,
		)
		if err != nil {
			return fmt.Errorf("caching budget %s: %w", b.ID, err)
		}
	}

	for i, cd := range ledger.Cards {
		_, err = tx.Exec(`INSERT INTO cards
			(file_path, position, id, card_type, last_four, holder, expiry,
			 balance, network, daily_limit, monthly_limit)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			filePath, i, cd.ID, cd.Type, cd.LastFour, cd.Holder, cd.Expiry,
			cd.Balance.String(), cd.Network, cd.DailyLimit.String(), cd.MonthlyLimit.String(),
		)
		if err != nil {
			return fmt.Errorf("caching card %s: %w", cd.ID, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT OR REPLACE INTO file_tracker
		(file_path, mtime_ns, size_bytes, parse_errors, parsed_at)
		VALUES (?, ?, ?, ?, ?)`, filePath, mtimeNs, sizeBytes, parseErrors, now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadFile reads the cached records of one file in their original order.
func (c *Cache) LoadFile(filePath string) (model.Ledger, error) {
	var ledger model.Ledger

	txs, err := c.loadTransactions(filePath)
	if err != nil {
		return ledger, fmt.Errorf("loading cached transactions: %w", err)
	}
	budgets, err := c.loadBudgets(filePath)
	if err != nil {
		return ledger, fmt.Errorf("loading cached budgets: %w", err)
	}
	cards, err := c.loadCards(filePath)
	if err != nil {
		return ledger, fmt.Errorf("loading cached cards: %w", err)
	}

	ledger.Transactions = txs
	ledger.Budgets = budgets
	ledger.Cards = cards
	return ledger, nil
}

func (c *Cache) loadTransactions(filePath string) ([]model.Transaction, error) {
	rows, err := c.db.Query(`SELECT id, title, amount, occurred_at, kind, category, merchant
		FROM transactions WHERE file_path = ? ORDER BY position`, filePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var amount, occurred, kind string
		if err := rows.Scan(&t.ID, &t.Title, &amount, &occurred, &kind, &t.Category, &t.Merchant); err != nil {
			return nil, err
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		if t.Date, err = time.Parse(time.RFC3339Nano, occurred); err != nil {
			return nil, err
		}
		t.Kind = model.Kind(kind)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (c *Cache) loadBudgets(filePath string) ([]model.BudgetCategory, error) {
	rows, err := c.db.Query(`SELECT id, category, limit_amount, spent, color_tag
		FROM budgets WHERE file_path = ? ORDER BY position`, filePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.BudgetCategory
	for rows.Next() {
		var b model.BudgetCategory
		var limit, spent string
		if err := rows.Scan(&b.ID, &b.Category, &limit, &spent, &b.ColorTag); err != nil {
			return nil, err
		}
		if b.Limit, err = decimal.NewFromString(limit); err != nil {
			return nil, err
		}
		if b.Spent, err = decimal.NewFromString(spent); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (c *Cache) loadCards(filePath string) ([]model.Card, error) {
	rows, err := c.db.Query(`SELECT id, card_type, last_four, holder, expiry,
		balance, network, daily_limit, monthly_limit
		FROM cards WHERE file_path = ? ORDER BY position`, filePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Card
	for rows.Next() {
		var cd model.Card
		var balance, daily, monthly string
		if err := rows.Scan(&cd.ID, &cd.Type, &cd.LastFour, &cd.Holder, &cd.Expiry,
			&balance, &cd.Network, &daily, &monthly); err != nil {
			return nil, err
		}
		for _, f := range []struct {
			dst *decimal.Decimal
			src string
		}{{&cd.Balance, balance}, {&cd.DailyLimit, daily}, {&cd.MonthlyLimit, monthly}} {
			if *f.dst, err = decimal.NewFromString(f.src); err != nil {
				return nil, err
			}
		}
		out = append(out, cd)
	}
	return out, rows.Err()
}

// DeleteFile removes all cached records and the tracking entry for filePath.
func (c *Cache) DeleteFile(filePath string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteRows(tx, filePath); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM file_tracker WHERE file_path = ?", filePath); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteRows(tx *sql.Tx, filePath string) error {
	for _, table := range []string{"transactions", "budgets", "cards"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE file_path = ?", filePath); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// Counts holds the number of cached rows per table.
type Counts struct {
	Files        int
	Transactions int
	Budgets      int
	Cards        int
}

// Counts returns the number of cached files and records.
func (c *Cache) Counts() (Counts, error) {
	var n Counts
	err := c.db.QueryRow(`SELECT
		(SELECT COUNT(*) FROM file_tracker),
		(SELECT COUNT(*) FROM transactions),
		(SELECT COUNT(*) FROM budgets),
		(SELECT COUNT(*) FROM cards)`).Scan(&n.Files, &n.Transactions, &n.Budgets, &n.Cards)
	return n, err
}

// Package source discovers and parses JSONL ledger files.
package source

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/pocket/internal/model"
)

// maxIssues caps how many line problems a ParseResult keeps for reporting.
const maxIssues = 10

// Timestamp layouts accepted in the "date" field. Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

//go:embed sample/ledger.jsonl
var sampleLedger []byte

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// ParseResult holds the output of parsing a single ledger file.
type ParseResult struct {
	File        DiscoveredFile
	Ledger      model.Ledger
	ParseErrors int
	Issues      []string // first few problems, "line N: reason"
	Err         error
}

// ParseFile reads a ledger file. Malformed or invalid lines are counted in
// ParseErrors and skipped; only I/O failures set Err.
//
// Lines are routed by their top-level "type" field:
//   - "transaction", "budget", "card" → validated and converted
//   - everything else → skipped
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{File: df, Err: err}
	}
	defer func() { _ = f.Close() }()

	return parse(f, df)
}

// Sample returns the built-in demo ledger.
func Sample() model.Ledger {
	pr := parse(bytes.NewReader(sampleLedger), DiscoveredFile{Path: "sample", Name: "sample"})
	return pr.Ledger
}

func parse(r io.Reader, df DiscoveredFile) ParseResult {
	result := ParseResult{File: df}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		if err := parseLine(line, lineNo, df, &result.Ledger); err != nil {
			result.ParseErrors++
			if len(result.Issues) < maxIssues {
				result.Issues = append(result.Issues, fmt.Sprintf("line %d: %v", lineNo, err))
			}
		}
	}

	if err := scanner.Err(); err != nil {
		result.Err = err
	}
	return result
}

func parseLine(line []byte, lineNo int, df DiscoveredFile, ledger *model.Ledger) error {
	var env rawEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		return err
	}

	switch env.Type {
	case TypeTransaction:
		var raw RawTransaction
		if err := decode(line, &raw); err != nil {
			return err
		}
		tx, err := raw.toModel()
		if err != nil {
			return err
		}
		if tx.ID == "" {
			tx.ID = lineID(df, lineNo)
		}
		ledger.Transactions = append(ledger.Transactions, tx)

	case TypeBudget:
		var raw RawBudget
		if err := decode(line, &raw); err != nil {
			return err
		}
		b := model.BudgetCategory{
			ID:       raw.ID,
			Category: raw.Category,
			Limit:    raw.Limit,
			Spent:    raw.Spent,
			ColorTag: raw.Color,
		}
		if b.ID == "" {
			b.ID = lineID(df, lineNo)
		}
		ledger.Budgets = append(ledger.Budgets, b)

	case TypeCard:
		var raw RawCard
		if err := decode(line, &raw); err != nil {
			return err
		}
		c := model.Card{
			ID:           raw.ID,
			Type:         raw.CardType,
			LastFour:     raw.LastFour,
			Holder:       raw.Holder,
			Expiry:       raw.Expiry,
			Balance:      raw.Balance,
			Network:      raw.Network,
			DailyLimit:   raw.DailyLimit,
			MonthlyLimit: raw.MonthlyLimit,
		}
		if c.ID == "" {
			c.ID = lineID(df, lineNo)
		}
		ledger.Cards = append(ledger.Cards, c)
	}

	return nil
}

func decode(line []byte, v interface{}) error {
	if err := json.Unmarshal(line, v); err != nil {
		return err
	}
	return validate.Struct(v)
}

func (r RawTransaction) toModel() (model.Transaction, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{
		ID:       r.ID,
		Title:    r.Title,
		Amount:   r.Amount,
		Date:     date,
		Kind:     model.Kind(r.Kind),
		Category: r.Category,
		Merchant: r.Merchant,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// lineID derives a stable identifier for a record that has none, so that
// reparsing an unchanged file yields the same IDs.
func lineID(df DiscoveredFile, lineNo int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("pocket:%s#%d", df.Name, lineNo))).String()
}

package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeLedger creates a temp JSONL file and returns a DiscoveredFile for it.
func writeLedger(t *testing.T, lines ...string) DiscoveredFile {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return DiscoveredFile{Path: path, Name: "ledger.jsonl"}
}

func TestParseFile_AllRecordTypes(t *testing.T) {
	df := writeLedger(t,
		`{"type":"transaction","id":"t1","title":"Coffee","amount":"4.75","date":"2025-08-06T09:20:00Z","kind":"expense","category":"Food","merchant":"Starbucks"}`,
		`{"type":"budget","id":"b1","category":"Food","limit":600,"spent":432.5,"color":"primary"}`,
		`{"type":"card","id":"c1","card_type":"Gold","last_four":"8765","balance":"1789.63","daily_limit":"500","monthly_limit":"3000"}`,
	)

	result := ParseFile(df)
	require.NoError(t, result.Err)
	assert.Equal(t, 0, result.ParseErrors)

	require.Len(t, result.Ledger.Transactions, 1)
	tx := result.Ledger.Transactions[0]
	assert.Equal(t, "t1", tx.ID)
	assert.Equal(t, "4.75", tx.Amount.String())
	assert.True(t, tx.Date.Equal(time.Date(2025, 8, 6, 9, 20, 0, 0, time.UTC)))

	require.Len(t, result.Ledger.Budgets, 1)
	assert.Equal(t, "432.5", result.Ledger.Budgets[0].Spent.String())
	assert.Equal(t, "primary", result.Ledger.Budgets[0].ColorTag)

	require.Len(t, result.Ledger.Cards, 1)
	assert.Equal(t, "Gold", result.Ledger.Cards[0].Type)
}

func TestParseFile_InvalidLinesCounted(t *testing.T) {
	df := writeLedger(t,
		`not json`,
		`{"type":"transaction","title":"Refund","amount":"-5","date":"2025-08-06","kind":"expense","category":"Food"}`,
		`{"type":"transaction","title":"Bonus","amount":"5","date":"2025-08-06","kind":"gift","category":"Salary"}`,
		`{"type":"transaction","amount":"5","date":"2025-08-06","kind":"income","category":"Salary"}`,
		`{"type":"transaction","title":"Lunch","amount":"5","date":"yesterday","kind":"expense","category":"Food"}`,
		`{"type":"card","card_type":"Gold","last_four":"87a5"}`,
		`{"type":"note","text":"ignored"}`,
		``,
		`{"type":"transaction","title":"Lunch","amount":"12","date":"2025-08-06T12:00","kind":"expense","category":"Food"}`,
	)

	result := ParseFile(df)
	require.NoError(t, result.Err)
	assert.Equal(t, 6, result.ParseErrors)
	assert.Len(t, result.Issues, 6)
	assert.True(t, strings.HasPrefix(result.Issues[0], "line 1:"), "Issues[0] = %q", result.Issues[0])
	require.Len(t, result.Ledger.Transactions, 1)
	assert.Equal(t, "Lunch", result.Ledger.Transactions[0].Title)
}

func TestParseFile_GeneratedIDsAreStable(t *testing.T) {
	line := `{"type":"transaction","title":"Lunch","amount":"12","date":"2025-08-06","kind":"expense","category":"Food"}`
	df := writeLedger(t, line, line)

	first := ParseFile(df)
	second := ParseFile(df)
	require.Len(t, first.Ledger.Transactions, 2)

	a, b := first.Ledger.Transactions[0].ID, first.Ledger.Transactions[1].ID
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b, "lines should get distinct IDs")
	assert.Equal(t, a, second.Ledger.Transactions[0].ID)
}

func TestParseFile_MissingFile(t *testing.T) {
	result := ParseFile(DiscoveredFile{Path: filepath.Join(t.TempDir(), "nope.jsonl")})
	if result.Err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSample(t *testing.T) {
	l := Sample()
	if len(l.Transactions) != 10 {
		t.Errorf("Transactions = %d, want 10", len(l.Transactions))
	}
	if len(l.Budgets) != 6 {
		t.Errorf("Budgets = %d, want 6", len(l.Budgets))
	}
	if len(l.Cards) != 3 {
		t.Errorf("Cards = %d, want 3", len(l.Cards))
	}
	if l.Transactions[4].Merchant != "Uber" {
		t.Errorf("Transactions[4].Merchant = %q, want Uber", l.Transactions[4].Merchant)
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jsonl", "a.jsonl", "notes.txt", filepath.Join("2025", "aug.jsonl")} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, nil, 0o600))
	}

	files, err := ScanDir(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"2025/aug.jsonl", "a.jsonl", "b.jsonl"}, names)
}

func TestScanDir_Missing(t *testing.T) {
	files, err := ScanDir(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("files = %d, want 0", len(files))
	}
}

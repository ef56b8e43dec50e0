package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/theirongolddev/pocket/internal/model"
	"github.com/theirongolddev/pocket/internal/pipeline"
)

// resetFlags restores the filter flags after a test changes them.
func resetFlags(t *testing.T) {
	t.Helper()
	category, search, from, to := flagCategory, flagSearch, flagFrom, flagTo
	days, sortKey, order, loc := flagDays, flagSort, flagOrder, appLoc
	t.Cleanup(func() {
		flagCategory, flagSearch, flagFrom, flagTo = category, search, from, to
		flagDays, flagSort, flagOrder, appLoc = days, sortKey, order, loc
	})
	flagCategory, flagSearch, flagFrom, flagTo = "", "", "", ""
	flagDays, flagSort, flagOrder = 0, "date", "desc"
	appLoc = time.UTC
}

func TestBuildQueryDefaults(t *testing.T) {
	resetFlags(t)

	q, err := buildQuery(time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("buildQuery: %v", err)
	}
	if q.Category != nil || q.Range != nil || q.Search != "" {
		t.Errorf("expected no filters, got %+v", q)
	}
	if q.Sort != model.SortByDate || q.Order != model.Descending {
		t.Errorf("sort = %s %s, want date desc", q.Sort, q.Order)
	}
}

func TestBuildQueryAllCategory(t *testing.T) {
	resetFlags(t)
	flagCategory = "all"

	q, err := buildQuery(time.Now())
	if err != nil {
		t.Fatalf("buildQuery: %v", err)
	}
	if q.Category != nil {
		t.Errorf("category = %s, want none for All", *q.Category)
	}
}

func TestBuildQueryDays(t *testing.T) {
	resetFlags(t)
	flagDays = 7

	now := time.Date(2025, 8, 3, 9, 0, 0, 0, time.UTC)
	q, err := buildQuery(now)
	if err != nil {
		t.Fatalf("buildQuery: %v", err)
	}
	if q.Range == nil {
		t.Fatal("expected a range")
	}
	if got := q.Range.Start.Format("2006-01-02"); got != "2025-07-28" {
		t.Errorf("start = %s, want 2025-07-28", got)
	}
}

func TestBuildQueryFromToBeatsDays(t *testing.T) {
	resetFlags(t)
	flagDays = 7
	flagFrom = "2025-08-01"
	flagTo = "2025-08-05"

	q, err := buildQuery(time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("buildQuery: %v", err)
	}
	if got := q.Range.Start.Format("2006-01-02"); got != "2025-08-01" {
		t.Errorf("start = %s, want 2025-08-01", got)
	}
	if got := q.Range.End.Format("2006-01-02"); got != "2025-08-05" {
		t.Errorf("end = %s, want 2025-08-05", got)
	}
}

func TestBuildQueryOpenEndedRange(t *testing.T) {
	resetFlags(t)
	flagTo = "2025-08-05"

	q, err := buildQuery(time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("buildQuery: %v", err)
	}
	if q.Range.Start.Year() != 1 {
		t.Errorf("start = %v, want unbounded", q.Range.Start)
	}
	if got := describeQuery(q); got != "All  start to Aug 5" {
		t.Errorf("describeQuery = %q", got)
	}
}

func TestBuildQueryErrors(t *testing.T) {
	tests := []struct {
		name  string
		apply func()
		want  error
	}{
		{"bad sort", func() { flagSort = "merchant" }, pipeline.ErrInvalidSortKey},
		{"bad order", func() { flagOrder = "sideways" }, pipeline.ErrInvalidSortOrder},
		{"reversed range", func() { flagFrom, flagTo = "2025-08-10", "2025-08-01" }, pipeline.ErrInvalidDateRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			tt.apply()
			_, err := buildQuery(time.Now())
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuildQueryBadDate(t *testing.T) {
	resetFlags(t)
	flagFrom = "08/01/2025"

	if _, err := buildQuery(time.Now()); err == nil {
		t.Error("expected an error for a malformed date")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Grocery Shopping", 8); got != "Grocery…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Uber", 8); got != "Uber" {
		t.Errorf("truncate = %q", got)
	}
}

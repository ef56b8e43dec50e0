package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/pocket/internal/model"
)

// AllCategories is the category label that means "no category filter".
const AllCategories = "All"

// DefaultQuery returns a query with no filters, newest first.
func DefaultQuery() model.Query {
	return model.Query{Sort: model.SortByDate, Order: model.Descending}
}

// Query filters and orders transactions. Filters run in a fixed order:
// category, search text, date range. The result is then stably sorted.
// The input slice is never modified.
func Query(txs []model.Transaction, q model.Query) ([]model.Transaction, error) {
	if err := ValidateQuery(q); err != nil {
		return nil, err
	}

	out := txs
	if q.Category != nil {
		out = FilterByCategory(out, *q.Category)
	}
	out = FilterBySearch(out, q.Search)
	if q.Range != nil {
		out = FilterByRange(out, *q.Range)
	}

	return SortTransactions(out, q.Sort, q.Order)
}

// ValidateQuery checks the sort parameters and date range of q.
func ValidateQuery(q model.Query) error {
	if _, err := lessFunc(q.Sort); err != nil {
		return err
	}
	if q.Order != model.Ascending && q.Order != model.Descending {
		return fmt.Errorf("%w: %q", ErrInvalidSortOrder, q.Order)
	}
	if q.Range != nil {
		return ValidateRange(*q.Range)
	}
	return nil
}

// ValidateRange returns ErrInvalidDateRange if the start day falls after the end day.
func ValidateRange(r model.DateRange) error {
	loc := r.Start.Location()
	start, end := civilDay(r.Start, loc), civilDay(r.End, loc)
	if start.After(end) {
		return fmt.Errorf("%w: %s is after %s", ErrInvalidDateRange,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return nil
}

// FilterByCategory keeps transactions whose category equals category, ignoring case.
func FilterByCategory(txs []model.Transaction, category string) []model.Transaction {
	var out []model.Transaction
	for _, t := range txs {
		if strings.EqualFold(t.Category, category) {
			out = append(out, t)
		}
	}
	return out
}

// FilterBySearch keeps transactions whose title or merchant contains text,
// ignoring case. Blank text keeps everything.
func FilterBySearch(txs []model.Transaction, text string) []model.Transaction {
	if strings.TrimSpace(text) == "" {
		return txs
	}
	needle := strings.ToLower(text)

	var out []model.Transaction
	for _, t := range txs {
		if containsIgnoreCase(t.Title, needle) || containsIgnoreCase(t.Merchant, needle) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByRange keeps transactions that fall on a calendar day within r,
// both ends inclusive.
func FilterByRange(txs []model.Transaction, r model.DateRange) []model.Transaction {
	loc := r.Start.Location()
	start, end := civilDay(r.Start, loc), civilDay(r.End, loc)

	var out []model.Transaction
	for _, t := range txs {
		d := civilDay(t.Date, loc)
		if !d.Before(start) && !d.After(end) {
			out = append(out, t)
		}
	}
	return out
}

// SortTransactions returns a stably sorted copy of txs.
// Ties keep their input order in both directions.
func SortTransactions(txs []model.Transaction, key model.SortKey, order model.SortOrder) ([]model.Transaction, error) {
	less, err := lessFunc(key)
	if err != nil {
		return nil, err
	}

	out := make([]model.Transaction, len(txs))
	copy(out, txs)

	switch order {
	case model.Ascending:
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	case model.Descending:
		sort.SliceStable(out, func(i, j int) bool { return less(out[j], out[i]) })
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortOrder, order)
	}
	return out, nil
}

func lessFunc(key model.SortKey) (func(a, b model.Transaction) bool, error) {
	switch key {
	case model.SortByDate:
		return func(a, b model.Transaction) bool { return a.Date.Before(b.Date) }, nil
	case model.SortByAmount:
		return func(a, b model.Transaction) bool { return a.Amount.LessThan(b.Amount) }, nil
	case model.SortByTitle:
		return func(a, b model.Transaction) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortKey, key)
	}
}

// ParseSortKey maps user input to a sort key. "name" is accepted for title.
func ParseSortKey(s string) (model.SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "date":
		return model.SortByDate, nil
	case "amount":
		return model.SortByAmount, nil
	case "title", "name":
		return model.SortByTitle, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
}

// ParseSortOrder maps user input to a sort order.
func ParseSortOrder(s string) (model.SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return model.Ascending, nil
	case "desc", "descending":
		return model.Descending, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortOrder, s)
	}
}

// ParseCategory turns a category argument into a filter.
// An empty argument or "All" yields nil (no filter).
func ParseCategory(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, AllCategories) {
		return nil
	}
	return &s
}

// LastNDays returns the range covering today and the n-1 calendar days before it,
// in now's location. It returns nil when n < 1.
func LastNDays(now time.Time, n int) *model.DateRange {
	if n < 1 {
		return nil
	}
	return &model.DateRange{Start: now.AddDate(0, 0, -(n - 1)), End: now}
}

// ParseDay parses a YYYY-MM-DD date in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// civilDay returns t's calendar date in loc as midnight UTC, so that days
// compare without DST effects.
func civilDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func containsIgnoreCase(s, lowerSubstr string) bool {
	return strings.Contains(strings.ToLower(s), lowerSubstr)
}

package pipeline

import "errors"

// Errors returned by the query engine and aggregation helpers.
// Callers branch on them with errors.Is.
var (
	ErrInvalidSortKey   = errors.New("invalid sort key")
	ErrInvalidSortOrder = errors.New("invalid sort order")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrDivisionByZero   = errors.New("division by zero")
)

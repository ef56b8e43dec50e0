package model

import "time"

// SortKey selects the field transactions are ordered by.
type SortKey string

const (
	SortByDate   SortKey = "date"
	SortByAmount SortKey = "amount"
	SortByTitle  SortKey = "title"
)

// SortOrder selects the direction of the ordering.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// DateRange is an inclusive span of calendar days. Days are taken in the
// location of Start.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Query holds the parameters of one transaction query.
// A nil Category or Range means no filtering on that dimension.
type Query struct {
	Search   string
	Category *string
	Range    *DateRange
	Sort     SortKey
	Order    SortOrder
}

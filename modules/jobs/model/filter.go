package model

import "time"

// Filter is the set of predicates the repository applies before
// ranking or sorting: equality fields, numeric ranges, and date
// windows, translated from request query parameters by the handler.
type Filter struct {
	Country          *string
	State            *string
	City             *string
	WorkType         *string
	WorkLocationType *string
	PayPeriod        *string
	CompanyID        *int64

	MinSalary     *float64
	MaxSalary     *float64
	MinNormSalary *float64
	MaxNormSalary *float64

	ListedFrom *time.Time
	ListedTo   *time.Time

	// Q is set only in filter+sort mode when a text query accompanies
	// an explicit sortBy; it becomes a case-insensitive title/description
	// match rather than the hybrid ranker's weighted score.
	Q *string
}

// AllowedSortFields is the sort-parser allow-list for Job listings.
var AllowedSortFields = []string{"listed_time", "min_salary", "max_salary", "normalized_salary", "createdAt"}

// DefaultSortField is used whenever sortBy is absent or not allow-listed.
const DefaultSortField = "listed_time"

// sortColumns maps an allow-listed API sort field to its storage column.
var sortColumns = map[string]string{
	"listed_time":       "listed_time",
	"min_salary":        "min_salary",
	"max_salary":        "max_salary",
	"normalized_salary": "normalized_salary",
	"createdAt":         "created_at",
}

// SortColumn resolves field to its SQL column, falling back to the
// default sort field's column for anything not allow-listed.
func SortColumn(field string) string {
	if col, ok := sortColumns[field]; ok {
		return col
	}
	return sortColumns[DefaultSortField]
}

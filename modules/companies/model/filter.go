package model

// Filter is the set of predicates applied before the §4.5 composite
// ranker runs in memory, or before a plain paginated fetch when no
// text query is present.
type Filter struct {
	Country *string
	State   *string
	City    *string
	MinSize *int
	MaxSize *int
}

// AllowedSortFields is the sort-parser allow-list for plain (no-q)
// company listings.
var AllowedSortFields = []string{"name", "createdAt"}

const DefaultSortField = "name"

var sortColumns = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
}

func SortColumn(field string) string {
	if col, ok := sortColumns[field]; ok {
		return col
	}
	return sortColumns[DefaultSortField]
}

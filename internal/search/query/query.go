// Package query parses the shared request parameters consumed by every
// listing endpoint: pagination, sort, and the loose number/date filters
// the filter builders compose into storage predicates.
package query

import (
	"strconv"
	"strings"
	"time"
)

// Pagination holds the resolved page/limit/skip triple.
type Pagination struct {
	Page  int
	Limit int
	Skip  int
}

// ParsePagination applies spec's defaults: page = max(1, int(page or 1)),
// limit = max(1, int(limit or 20)), skip = (page-1)*limit.
func ParsePagination(rawPage, rawLimit string) Pagination {
	page := parsePositiveIntOrDefault(rawPage, 1)
	limit := parsePositiveIntOrDefault(rawLimit, 20)
	return Pagination{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
	}
}

func parsePositiveIntOrDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if n < 1 {
		return 1
	}
	return n
}

// TotalPages computes ceil(total/limit) with a floor of 1.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		limit = 1
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		return 1
	}
	return pages
}

// SortDir is the normalized sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Sort is a resolved (field, direction) pair, already checked against
// an entity's allow-list.
type Sort struct {
	Field string
	Dir   SortDir
}

// ParseSort resolves sortBy against allowed (the per-entity allow-list),
// falling back to defaultField when sortBy is absent or not allowed.
// sortDir defaults to desc when defaultDescDir is true and the caller
// didn't specify one, otherwise asc.
func ParseSort(sortBy, sortDir string, allowed []string, defaultField string, defaultDescDir bool) Sort {
	field := defaultField
	for _, a := range allowed {
		if a == sortBy {
			field = sortBy
			break
		}
	}

	dir := SortAsc
	switch strings.ToLower(sortDir) {
	case "asc":
		dir = SortAsc
	case "desc":
		dir = SortDesc
	default:
		if defaultDescDir {
			dir = SortDesc
		}
	}

	return Sort{Field: field, Dir: dir}
}

// ParseNumber returns nil when raw is empty or unparsable, so callers
// can elide the corresponding predicate.
func ParseNumber(raw string) *float64 {
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &n
}

// ParseInt mirrors ParseNumber for integer-valued filters (ids, sizes).
func ParseInt(raw string) *int64 {
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// ParseDate accepts RFC3339 and plain YYYY-MM-DD, returning nil on
// absence or parse failure.
func ParseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

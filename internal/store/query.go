package store

import (
	"strconv"
	"time"
)

// Pagination defaults applied when parameters are absent or unusable.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Sort defaults. SortColumnCreatedAt doubles as the fallback for any
// sort key outside the whitelist.
const (
	SortColumnCreatedAt = "created_at"
	SortColumnTitle     = "title"
	SortColumnStatus    = "status"
)

// sortColumns whitelists the external sort keys and maps them to storage
// column names. Anything else falls back to created_at.
var sortColumns = map[string]string{
	"createdAt": SortColumnCreatedAt,
	"title":     SortColumnTitle,
	"status":    SortColumnStatus,
}

// TaskFilter describes the optional filter predicates for listing tasks.
// The date bounds only take effect when both are present; a partial range
// is ignored rather than rejected.
type TaskFilter struct {
	Status   string
	Search   string
	FromDate *time.Time
	ToDate   *time.Time
}

// DateRangeActive reports whether both date bounds are set, which is the
// only case in which the createdAt interval constraint applies.
func (f TaskFilter) DateRangeActive() bool {
	return f.FromDate != nil && f.ToDate != nil
}

// PageParams holds the requested pagination window.
type PageParams struct {
	Page  int
	Limit int
}

// SortParams holds the requested sort key and direction.
type SortParams struct {
	SortBy    string
	SortOrder string
}

// TaskQuery is the storage-engine-agnostic plan for fetching a page of
// tasks: filter predicates, a resolved sort column and direction, and a
// skip/limit window.
type TaskQuery struct {
	Filter     TaskFilter
	SortColumn string
	Descending bool
	Offset     int
	Limit      int
}

// BuildTaskQuery translates filter, pagination, and sort parameters into a
// query plan. Each parameter group is optional and composes freely with the
// others; inputs are never mutated. Out-of-range pagination values fall
// back to the defaults, the sort key is resolved through the whitelist, and
// any sort order other than "asc" means descending.
func BuildTaskQuery(filter TaskFilter, page PageParams, sort SortParams) TaskQuery {
	p := page.Page
	if p < 1 {
		p = DefaultPage
	}
	limit := page.Limit
	if limit < 1 {
		limit = DefaultLimit
	}

	column, ok := sortColumns[sort.SortBy]
	if !ok {
		column = SortColumnCreatedAt
	}

	return TaskQuery{
		Filter:     filter,
		SortColumn: column,
		Descending: sort.SortOrder != "asc",
		Offset:     (p - 1) * limit,
		Limit:      limit,
	}
}

// ParsePositiveInt parses a raw query-string value into a positive integer.
// It is total: any empty, non-numeric, or non-positive input yields the
// given default instead of an error.
func ParsePositiveInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Pages computes the number of pages needed to cover total records at the
// given page size: ceil(total / limit).
func Pages(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

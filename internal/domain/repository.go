// Package domain holds types shared by the domain packages.
package domain

import "time"

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

// NewPage clamps page and limit: page >= 1, 1 <= limit <= maxLimit,
// and limit falls back to defLimit when unset.
func NewPage(page, limit, defLimit, maxLimit int) Page {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return Page{Page: page, Limit: limit}
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// ListResult contains one page of results.
type ListResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewListResult fills in the page count.
func NewListResult[T any](items []T, total int64, p Page) ListResult[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return ListResult[T]{Items: items, Total: total, Page: p.Page, Limit: p.Limit, Pages: pages}
}

// TimeRange bounds created_at. Either end may be nil.
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

// Empty reports whether neither bound is set.
func (r TimeRange) Empty() bool {
	return r.From == nil && r.To == nil
}

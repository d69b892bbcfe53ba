package domain

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Cursor is the page window of a collection. Offset is always a multiple of
// Limit; Total is the last count reported by the catalog.
type Cursor struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

func NewCursor(limit int) Cursor {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return Cursor{Limit: limit}
}

// Page returns the 1-based page number.
func (c Cursor) Page() int {
	if c.Limit <= 0 {
		return 1
	}
	return c.Offset/c.Limit + 1
}

func (c Cursor) PageCount() int {
	if c.Limit <= 0 || c.Total <= 0 {
		return 0
	}
	return (c.Total + c.Limit - 1) / c.Limit
}

func (c Cursor) HasPrev() bool {
	return c.Offset > 0
}

func (c Cursor) HasNext() bool {
	return c.Offset+c.Limit < c.Total
}

// Reachable reports whether page is at least 1 and its offset fits in an int.
func (c Cursor) Reachable(page int) bool {
	if page < 1 {
		return false
	}
	if c.Limit <= 0 {
		return true
	}
	return page-1 <= math.MaxInt/c.Limit
}

func (c Cursor) WithPage(page int) Cursor {
	c.Offset = (page - 1) * c.Limit
	return c
}

func (c Cursor) WithLimit(limit int) Cursor {
	c.Limit = limit
	c.Offset = 0
	return c
}

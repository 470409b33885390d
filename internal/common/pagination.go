package common

import (
	"github.com/gin-gonic/gin"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageQuery is the page/page_size pair accepted by every list endpoint.
type PageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// normalize clamps a query into a usable window. Bad input falls back to defaults, never to an error.
func (q PageQuery) normalize() PageQuery {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	switch {
	case q.PageSize <= 0:
		q.PageSize = DefaultPageSize
	case q.PageSize > MaxPageSize:
		q.PageSize = MaxPageSize
	}
	return q
}

// GetPaginationParams reads page and page_size from the query string.
func GetPaginationParams(c *gin.Context) (page, pageSize int) {
	var q PageQuery
	// Non-numeric values leave the field zero, which normalize replaces.
	_ = c.ShouldBindQuery(&q)
	q = q.normalize()
	return q.Page, q.PageSize
}

// Pagination describes one page of an in-memory collection.
type Pagination struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// Paginate slices an in-memory result set. Pages past the end are empty, not an error.
func Paginate[T any](items []T, page, pageSize int) ([]T, *Pagination) {
	q := PageQuery{Page: page, PageSize: pageSize}.normalize()
	total := len(items)
	totalPages := (total + q.PageSize - 1) / q.PageSize
	p := &Pagination{
		TotalItems:  int64(total),
		TotalPages:  totalPages,
		CurrentPage: q.Page,
		PageSize:    q.PageSize,
		HasNext:     q.Page < totalPages,
		HasPrev:     q.Page > 1,
	}

	start := (q.Page - 1) * q.PageSize
	if start >= total {
		return []T{}, p
	}
	return items[start:min(start+q.PageSize, total)], p
}

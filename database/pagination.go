package database

import (
	"strings"

	"gorm.io/gorm"
)

// DefaultPageSize is used when a listing does not ask for a page size.
const DefaultPageSize = 20

// Sort is one of the listing orders offered by the catalog views.
type Sort string

const (
	SortAToZ          Sort = "A to Z"
	SortZToA          Sort = "Z to A"
	SortRecentlyAdded Sort = "Recently Added"
	// SortMostPopular has no popularity signal behind it yet and orders like SortRecentlyAdded.
	SortMostPopular Sort = "Most Popular"
)

// ParseSort maps a query value to a Sort, falling back to SortAToZ.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortZToA, SortRecentlyAdded, SortMostPopular:
		return Sort(s)
	default:
		return SortAToZ
	}
}

// ListOptions are the filters shared by every catalog listing.
type ListOptions struct {
	Search   string
	Sort     Sort
	Page     int
	PageSize int
}

// Page is one page of a listing. Page is clamped to [1, TotalPages].
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
	Total      int64 `json:"total"`
}

// clampPage turns a requested page into a valid one: anything below 1 becomes the first
// page and anything past the end becomes the last page.
func clampPage(requested, size int, total int64) (page, pages int) {
	pages = int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		pages = 1
	}
	page = requested
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	return page, pages
}

// fetchPage counts q, then loads the requested page of it with the given columns and order.
// Preloads are applied to the page query only.
func fetchPage[T any](q *gorm.DB, opts ListOptions, columns, order string, preloads ...string) (*Page[T], error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	size := opts.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	page, pages := clampPage(opts.Page, size, total)

	for _, p := range preloads {
		q = q.Preload(p)
	}
	items := []T{}
	if err := q.Select(columns).Order(order).Offset((page - 1) * size).Limit(size).Find(&items).Error; err != nil {
		return nil, err
	}
	return &Page[T]{Items: items, Page: page, PageSize: size, TotalPages: pages, Total: total}, nil
}

// containsPattern builds a case-insensitive LIKE pattern; use it with likeClause.
func containsPattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(strings.ToLower(s))
	return "%" + s + "%"
}

func likeClause(column string) string {
	return "LOWER(" + column + `) LIKE ? ESCAPE '\'`
}

// Package paging cuts ordered result sets into numbered pages and describes
// them for clients.
package paging

import (
	"math"
)

// Source is an ordered, countable sequence. Filtering and sorting happen
// before it gets here.
type Source[T any] interface {
	Len() int
	Slice(offset, limit int) []T
}

// Slice adapts an already ordered slice to a Source.
type Slice[T any] []T

func (s Slice[T]) Len() int {
	return len(s)
}

func (s Slice[T]) Slice(offset, limit int) []T {
	if offset < 0 || offset >= len(s) || limit < 1 {
		return []T{}
	}
	end := offset + limit
	if end < offset || end > len(s) {
		end = len(s)
	}
	return s[offset:end]
}

// Page is one page of items plus what's needed to navigate around it.
type Page[T any] struct {
	Items       []T
	TotalCount  int
	PageSize    int
	CurrentPage int
	TotalPages  int
}

// Paginate returns page pageNumber (1-based) of src. Callers clamp
// pageNumber and pageSize to at least 1. A page past the end has no items.
func Paginate[T any](src Source[T], pageNumber, pageSize int) *Page[T] {
	total := src.Len()
	items := src.Slice(Offset(pageNumber, pageSize), pageSize)
	return New(items, total, pageNumber, pageSize)
}

// New builds a page from items that were already limited to the page, e.g. by
// a LIMIT/OFFSET query, and the unpaged total.
func New[T any](items []T, totalCount, pageNumber, pageSize int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:       items,
		TotalCount:  totalCount,
		PageSize:    pageSize,
		CurrentPage: pageNumber,
		TotalPages:  TotalPages(totalCount, pageSize),
	}
}

// Offset is the number of items that come before pageNumber. It saturates at
// math.MaxInt rather than overflowing.
func Offset(pageNumber, pageSize int) int {
	if pageNumber < 1 || pageSize < 1 {
		return 0
	}
	if pageNumber-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (pageNumber - 1) * pageSize
}

func TotalPages(totalCount, pageSize int) int {
	if totalCount <= 0 || pageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(pageSize)))
}

func (p *Page[T]) HasPrevious() bool {
	return p.CurrentPage > 1
}

func (p *Page[T]) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// Map converts every item of p with fn, keeping the page numbers.
func Map[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return &Page[U]{
		Items:       items,
		TotalCount:  p.TotalCount,
		PageSize:    p.PageSize,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
	}
}

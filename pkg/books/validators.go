package books

import (
	"strconv"

	"github.com/shishobooks/stacks/pkg/paging"
)

type ListBooksQuery struct {
	PageNumber int     `query:"page_number" json:"page_number,omitempty"`
	PageSize   int     `query:"page_size" json:"page_size,omitempty"`
	OrderBy    string  `query:"order_by" json:"order_by,omitempty" mod:"trim" default:"title"`
	Fields     string  `query:"fields" json:"fields,omitempty" mod:"trim"`
	Search     *string `query:"search" json:"search,omitempty" mod:"trim" validate:"omitempty,max=100"`
}

// Normalize clamps the page number and size.
func (q *ListBooksQuery) Normalize(defaultSize, maxSize int) {
	q.PageNumber, q.PageSize = paging.Clamp(q.PageNumber, q.PageSize, defaultSize, maxSize)
}

func (q ListBooksQuery) CurrentPage() int {
	return q.PageNumber
}

// QueryParams is the query string of this listing, for any page.
func (q ListBooksQuery) QueryParams(_ int) map[string]string {
	params := map[string]string{
		"page_size": strconv.Itoa(q.PageSize),
		"order_by":  q.OrderBy,
	}
	if q.Fields != "" {
		params["fields"] = q.Fields
	}
	if q.Search != nil && *q.Search != "" {
		params["search"] = *q.Search
	}
	return params
}

type RetrieveBookQuery struct {
	Fields string `query:"fields" json:"fields,omitempty" mod:"trim"`
}

type CreateBookPayload struct {
	Title       string  `json:"title" mod:"trim" validate:"required,max=100"`
	Description *string `json:"description,omitempty" mod:"trim" validate:"omitempty,max=500,nefield=Title"`
}

type UpdateBookPayload struct {
	Title       string  `json:"title" mod:"trim" validate:"required,max=100"`
	Description *string `json:"description" mod:"trim" validate:"required,max=500,nefield=Title"`
}

type PatchBookPayload struct {
	Title       *string `json:"title,omitempty" mod:"trim" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" mod:"trim" validate:"omitempty,max=500"`
}

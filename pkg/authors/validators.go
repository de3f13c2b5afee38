package authors

import (
	"strconv"

	"github.com/shishobooks/stacks/pkg/books"
	"github.com/shishobooks/stacks/pkg/paging"
)

type ListAuthorsQuery struct {
	PageNumber int     `query:"page_number" json:"page_number,omitempty"`
	PageSize   int     `query:"page_size" json:"page_size,omitempty"`
	OrderBy    string  `query:"order_by" json:"order_by,omitempty" mod:"trim" default:"name"`
	Fields     string  `query:"fields" json:"fields,omitempty" mod:"trim"`
	Genre      *string `query:"genre" json:"genre,omitempty" mod:"trim" validate:"omitempty,max=50"`
	Search     *string `query:"search" json:"search,omitempty" mod:"trim" validate:"omitempty,max=100"`
}

// Normalize clamps the page number and size.
func (q *ListAuthorsQuery) Normalize(defaultSize, maxSize int) {
	q.PageNumber, q.PageSize = paging.Clamp(q.PageNumber, q.PageSize, defaultSize, maxSize)
}

func (q ListAuthorsQuery) CurrentPage() int {
	return q.PageNumber
}

// QueryParams is the query string of this listing, for any page.
func (q ListAuthorsQuery) QueryParams(_ int) map[string]string {
	params := map[string]string{
		"page_size": strconv.Itoa(q.PageSize),
		"order_by":  q.OrderBy,
	}
	if q.Fields != "" {
		params["fields"] = q.Fields
	}
	if q.Genre != nil && *q.Genre != "" {
		params["genre"] = *q.Genre
	}
	if q.Search != nil && *q.Search != "" {
		params["search"] = *q.Search
	}
	return params
}

type RetrieveAuthorQuery struct {
	Fields string `query:"fields" json:"fields,omitempty" mod:"trim"`
}

type CreateAuthorPayload struct {
	FirstName   string                    `json:"first_name" mod:"trim" validate:"required,max=50"`
	LastName    string                    `json:"last_name" mod:"trim" validate:"required,max=50"`
	DateOfBirth string                    `json:"date_of_birth" mod:"trim" validate:"required,date"`
	Genre       string                    `json:"genre" mod:"trim" validate:"required,max=50"`
	Books       []books.CreateBookPayload `json:"books,omitempty" mod:"dive" validate:"omitempty,dive"`
}

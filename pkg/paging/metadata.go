package paging

import (
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// HeaderName is the response header the metadata is sent in, so list bodies
// only carry the resources and their links.
const HeaderName = "X-Pagination"

type Metadata struct {
	TotalCount       int     `json:"total_count"`
	PageSize         int     `json:"page_size"`
	CurrentPage      int     `json:"current_page"`
	TotalPages       int     `json:"total_pages"`
	PreviousPageLink *string `json:"previous_page_link,omitempty"`
	NextPageLink     *string `json:"next_page_link,omitempty"`
}

// MetadataFor describes p. Links are optional and only set when non-empty.
func MetadataFor[T any](p *Page[T], previousLink, nextLink string) Metadata {
	m := Metadata{
		TotalCount:  p.TotalCount,
		PageSize:    p.PageSize,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
	}
	if previousLink != "" {
		m.PreviousPageLink = &previousLink
	}
	if nextLink != "" {
		m.NextPageLink = &nextLink
	}
	return m
}

// Header renders m as the X-Pagination header value.
func (m Metadata) Header() (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(b), nil
}

package hateoas

import (
	"github.com/shishobooks/stacks/pkg/paging"
)

// Collection is the envelope of a listing: the (shaped) items and the links of
// the page they're on.
type Collection struct {
	Value any    `json:"value"`
	Links []Link `json:"links"`
}

// PageMetadata describes p for the pagination header, including the URIs of
// the neighbouring pages when there are any.
func PageMetadata[T any](b *Builder, route string, params map[string]string, q Pageable, p *paging.Page[T]) (paging.Metadata, error) {
	var prev, next string
	var err error
	if p.HasPrevious() {
		prev, err = b.PageURI(route, params, q, p.CurrentPage-1)
		if err != nil {
			return paging.Metadata{}, err
		}
	}
	if p.HasNext() {
		next, err = b.PageURI(route, params, q, p.CurrentPage+1)
		if err != nil {
			return paging.Metadata{}, err
		}
	}
	return paging.MetadataFor(p, prev, next), nil
}

// Package hateoas decides which links a resource or a page of resources gets.
// Turning a route name and its parameters into a URI is left to a URIBuilder.
package hateoas

import (
	"net/http"
	"strconv"
)

// Relation names shared by every resource.
const (
	RelSelf         = "self"
	RelNextPage     = "next_page"
	RelPreviousPage = "previous_page"
)

// Query parameters the builder itself fills in.
const (
	ParamFields     = "fields"
	ParamPageNumber = "page_number"
)

// Link is a single navigation hint.
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

// URIBuilder resolves a named route. Parameters that aren't part of the route
// path end up in the query string. An unknown route is a configuration error.
type URIBuilder interface {
	BuildURI(route string, params map[string]string) (string, error)
}

// Action is something that can be done to a resource besides fetching it.
type Action struct {
	Rel    string
	Method string
	Route  string
}

// ResourceLinks is the fixed set of links a resource type exposes.
type ResourceLinks struct {
	SelfRoute string
	Actions   []Action
}

// Pageable is a list request that can be rendered again for any page number.
type Pageable interface {
	CurrentPage() int
	QueryParams(pageNumber int) map[string]string
}

type Builder struct {
	uris URIBuilder
}

func NewBuilder(uris URIBuilder) *Builder {
	return &Builder{uris: uris}
}

// ForResource builds the self link followed by one link per action. params
// identify the resource (e.g. its id and its parent's id). A non-empty fields
// value is carried on the self link so following it returns the same shape.
func (b *Builder) ForResource(rl ResourceLinks, params map[string]string, fields string) ([]Link, error) {
	selfParams := params
	if fields != "" {
		selfParams = with(params, ParamFields, fields)
	}

	self, err := b.link(rl.SelfRoute, selfParams, RelSelf, http.MethodGet)
	if err != nil {
		return nil, err
	}

	links := make([]Link, 0, len(rl.Actions)+1)
	links = append(links, self)
	for _, a := range rl.Actions {
		l, err := b.link(a.Route, params, a.Rel, a.Method)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, nil
}

// ForPage builds the links of a page envelope: self, then next_page and
// previous_page when they exist. Every query parameter other than the page
// number stays the same.
func (b *Builder) ForPage(route string, params map[string]string, q Pageable, hasNext, hasPrevious bool) ([]Link, error) {
	current := q.CurrentPage()

	self, err := b.PageURI(route, params, q, current)
	if err != nil {
		return nil, err
	}
	links := []Link{{Href: self, Rel: RelSelf, Method: http.MethodGet}}

	if hasNext {
		next, err := b.PageURI(route, params, q, current+1)
		if err != nil {
			return nil, err
		}
		links = append(links, Link{Href: next, Rel: RelNextPage, Method: http.MethodGet})
	}

	if hasPrevious {
		prev, err := b.PageURI(route, params, q, current-1)
		if err != nil {
			return nil, err
		}
		links = append(links, Link{Href: prev, Rel: RelPreviousPage, Method: http.MethodGet})
	}

	return links, nil
}

// PageURI is the URI of page pageNumber of the list described by q.
func (b *Builder) PageURI(route string, params map[string]string, q Pageable, pageNumber int) (string, error) {
	all := make(map[string]string, len(params)+6)
	for k, v := range params {
		all[k] = v
	}
	for k, v := range q.QueryParams(pageNumber) {
		all[k] = v
	}
	all[ParamPageNumber] = strconv.Itoa(pageNumber)
	return b.uris.BuildURI(route, all)
}

// Link builds a single link for a named route.
func (b *Builder) Link(route string, params map[string]string, rel, method string) (Link, error) {
	return b.link(route, params, rel, method)
}

func (b *Builder) link(route string, params map[string]string, rel, method string) (Link, error) {
	href, err := b.uris.BuildURI(route, params)
	if err != nil {
		return Link{}, err
	}
	return Link{Href: href, Rel: rel, Method: method}, nil
}

func with(params map[string]string, key, value string) map[string]string {
	cp := make(map[string]string, len(params)+1)
	for k, v := range params {
		cp[k] = v
	}
	cp[key] = value
	return cp
}

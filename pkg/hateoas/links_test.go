package hateoas

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeURIs renders "route?k=v&k=v" so tests can assert on exact hrefs.
type fakeURIs struct{}

func (fakeURIs) BuildURI(route string, params map[string]string) (string, error) {
	if route == "missing" {
		return "", errors.WithStack(ErrRouteNotFound)
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	if len(parts) == 0 {
		return route, nil
	}
	return route + "?" + strings.Join(parts, "&"), nil
}

type listQuery struct {
	page    int
	orderBy string
}

func (q listQuery) CurrentPage() int { return q.page }

func (q listQuery) QueryParams(pageNumber int) map[string]string {
	return map[string]string{
		"order_by":  q.orderBy,
		"page_size": "10",
	}
}

var authorLinks = ResourceLinks{
	SelfRoute: "get_author",
	Actions: []Action{
		{Rel: "delete_author", Method: http.MethodDelete, Route: "delete_author"},
		{Rel: "create_book_for_author", Method: http.MethodPost, Route: "create_book_for_author"},
		{Rel: "books", Method: http.MethodGet, Route: "get_books_for_author"},
	},
}

func TestForResource(t *testing.T) {
	t.Parallel()
	b := NewBuilder(fakeURIs{})

	t.Run("no fields", func(tt *testing.T) {
		links, err := b.ForResource(authorLinks, map[string]string{"author_id": "a1"}, "")
		require.NoError(tt, err)
		assert.Equal(tt, []Link{
			{Href: "get_author?author_id=a1", Rel: "self", Method: "GET"},
			{Href: "delete_author?author_id=a1", Rel: "delete_author", Method: "DELETE"},
			{Href: "create_book_for_author?author_id=a1", Rel: "create_book_for_author", Method: "POST"},
			{Href: "get_books_for_author?author_id=a1", Rel: "books", Method: "GET"},
		}, links)
	})

	t.Run("fields only on self", func(tt *testing.T) {
		params := map[string]string{"author_id": "a1"}
		links, err := b.ForResource(authorLinks, params, "id,name")
		require.NoError(tt, err)
		require.Len(tt, links, 4)
		assert.Equal(tt, "get_author?author_id=a1&fields=id,name", links[0].Href)
		assert.Equal(tt, "delete_author?author_id=a1", links[1].Href)
		assert.NotContains(tt, params, "fields")
	})

	t.Run("exactly one self", func(tt *testing.T) {
		links, err := b.ForResource(authorLinks, map[string]string{"author_id": "a1"}, "")
		require.NoError(tt, err)
		count := 0
		for _, l := range links {
			if l.Rel == RelSelf {
				count++
			}
		}
		assert.Equal(tt, 1, count)
	})

	t.Run("unknown route", func(tt *testing.T) {
		_, err := b.ForResource(ResourceLinks{SelfRoute: "missing"}, nil, "")
		assert.True(tt, errors.Is(err, ErrRouteNotFound))
	})
}

func TestForPage(t *testing.T) {
	t.Parallel()
	b := NewBuilder(fakeURIs{})

	t.Run("first of several pages", func(tt *testing.T) {
		links, err := b.ForPage("get_authors", nil, listQuery{page: 1, orderBy: "name"}, true, false)
		require.NoError(tt, err)
		assert.Equal(tt, []Link{
			{Href: "get_authors?order_by=name&page_number=1&page_size=10", Rel: "self", Method: "GET"},
			{Href: "get_authors?order_by=name&page_number=2&page_size=10", Rel: "next_page", Method: "GET"},
		}, links)
	})

	t.Run("middle page", func(tt *testing.T) {
		links, err := b.ForPage("get_authors", nil, listQuery{page: 2, orderBy: "age desc"}, true, true)
		require.NoError(tt, err)
		require.Len(tt, links, 3)
		assert.Equal(tt, []string{"self", "next_page", "previous_page"}, []string{links[0].Rel, links[1].Rel, links[2].Rel})
		assert.Equal(tt, "get_authors?order_by=age desc&page_number=1&page_size=10", links[2].Href)
	})

	t.Run("single page", func(tt *testing.T) {
		links, err := b.ForPage("get_authors", nil, listQuery{page: 1}, false, false)
		require.NoError(tt, err)
		require.Len(tt, links, 1)
		assert.Equal(tt, RelSelf, links[0].Rel)
	})

	t.Run("route params are kept", func(tt *testing.T) {
		links, err := b.ForPage("get_books_for_author", map[string]string{"author_id": "a1"}, listQuery{page: 3}, false, true)
		require.NoError(tt, err)
		require.Len(tt, links, 2)
		assert.Contains(tt, links[1].Href, "author_id=a1")
		assert.Contains(tt, links[1].Href, "page_number=2")
	})
}

func TestForPage_OnlyPageNumberChanges(t *testing.T) {
	t.Parallel()
	b := NewBuilder(fakeURIs{})

	for page := 2; page <= 5; page++ {
		q := listQuery{page: page, orderBy: "genre,name"}
		links, err := b.ForPage("get_authors", nil, q, true, true)
		require.NoError(t, err)

		for _, l := range links {
			want := q.QueryParams(0)
			switch l.Rel {
			case RelSelf:
				want[ParamPageNumber] = strconv.Itoa(page)
			case RelNextPage:
				want[ParamPageNumber] = strconv.Itoa(page + 1)
			case RelPreviousPage:
				want[ParamPageNumber] = strconv.Itoa(page - 1)
			}
			expected, _ := fakeURIs{}.BuildURI("get_authors", want)
			assert.Equal(t, expected, l.Href)
		}
	}
}

func newEcho() *echo.Echo {
	e := echo.New()
	noop := func(c echo.Context) error { return nil }
	e.GET("/api/authors", noop).Name = "get_authors"
	e.GET("/api/authors/:author_id", noop).Name = "get_author"
	e.GET("/api/authors/:author_id/books/:book_id", noop).Name = "get_book_for_author"
	e.GET("/api/author-collections/:ids", noop).Name = "get_author_collection"
	return e
}

func newContext(e *echo.Echo, headers map[string]string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "http://stacks.test/api/authors", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestEchoURIBuilder(t *testing.T) {
	t.Parallel()
	e := newEcho()

	t.Run("path params", func(tt *testing.T) {
		uris := NewEchoURIBuilder(newContext(e, nil))
		uri, err := uris.BuildURI("get_book_for_author", map[string]string{"author_id": "a1", "book_id": "b2"})
		require.NoError(tt, err)
		assert.Equal(tt, "http://stacks.test/api/authors/a1/books/b2", uri)
	})

	t.Run("leftover params become the query", func(tt *testing.T) {
		uris := NewEchoURIBuilder(newContext(e, nil))
		uri, err := uris.BuildURI("get_authors", map[string]string{
			"page_size":   "10",
			"order_by":    "age desc",
			"page_number": "2",
		})
		require.NoError(tt, err)

		u, err := url.Parse(uri)
		require.NoError(tt, err)
		assert.Equal(tt, "/api/authors", u.Path)
		assert.Equal(tt, "age desc", u.Query().Get("order_by"))
		assert.Equal(tt, "order_by=age+desc&page_number=2&page_size=10", u.RawQuery)
	})

	t.Run("id lists", func(tt *testing.T) {
		uris := NewEchoURIBuilder(newContext(e, nil))
		uri, err := uris.BuildURI("get_author_collection", map[string]string{"ids": "(a,b)"})
		require.NoError(tt, err)
		assert.Equal(tt, "http://stacks.test/api/author-collections/(a,b)", uri)
	})

	t.Run("proxy headers", func(tt *testing.T) {
		uris := NewEchoURIBuilder(newContext(e, map[string]string{
			"X-Forwarded-Proto":  "https",
			"X-Forwarded-Prefix": "/library/",
		}))
		uri, err := uris.BuildURI("get_author", map[string]string{"author_id": "a1"})
		require.NoError(tt, err)
		assert.Equal(tt, "https://stacks.test/library/api/authors/a1", uri)
	})

	t.Run("unknown route", func(tt *testing.T) {
		uris := NewEchoURIBuilder(newContext(e, nil))
		_, err := uris.BuildURI("get_shoes", nil)
		assert.True(tt, errors.Is(err, ErrRouteNotFound))
	})

	t.Run("missing path param", func(tt *testing.T) {
		uris := NewEchoURIBuilder(newContext(e, nil))
		_, err := uris.BuildURI("get_author", map[string]string{"book_id": "b1"})
		assert.True(tt, errors.Is(err, ErrMissingRouteParam))
	})
}

func TestBuilder_WithEcho(t *testing.T) {
	t.Parallel()
	e := newEcho()
	b := NewBuilder(NewEchoURIBuilder(newContext(e, nil)))

	links, err := b.ForPage("get_authors", nil, listQuery{page: 1, orderBy: "name"}, true, false)
	require.NoError(t, err)
	assert.Equal(t, []Link{
		{Href: "http://stacks.test/api/authors?order_by=name&page_number=1&page_size=10", Rel: "self", Method: "GET"},
		{Href: "http://stacks.test/api/authors?order_by=name&page_number=2&page_size=10", Rel: "next_page", Method: "GET"},
	}, links)
}

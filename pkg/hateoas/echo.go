package hateoas

import (
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

var (
	ErrRouteNotFound     = errors.New("route not found")
	ErrMissingRouteParam = errors.New("missing route parameter")
)

// Parentheses and commas are legal in a path segment and are how id lists are
// written, so they're left alone.
var pathUnescaper = strings.NewReplacer("%28", "(", "%29", ")", "%2C", ",")

// EchoURIBuilder builds absolute URIs out of the named routes registered on
// an echo instance. It's created per request because the base URL depends on
// the request's host and proxy headers.
type EchoURIBuilder struct {
	e       *echo.Echo
	baseURL string
}

func NewEchoURIBuilder(c echo.Context) *EchoURIBuilder {
	return &EchoURIBuilder{e: c.Echo(), baseURL: BaseURL(c)}
}

// BaseURL is the scheme and host the client used to reach us, including any
// prefix a reverse proxy stripped.
func BaseURL(c echo.Context) string {
	req := c.Request()
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	if proto := req.Header.Get(echo.HeaderXForwardedProto); proto != "" {
		scheme = proto
	}
	prefix := strings.TrimSuffix(req.Header.Get("X-Forwarded-Prefix"), "/")
	return scheme + "://" + req.Host + prefix
}

func (b *EchoURIBuilder) BuildURI(route string, params map[string]string) (string, error) {
	var path string
	found := false
	for _, r := range b.e.Routes() {
		if r.Name == route {
			path = r.Path
			found = true
			break
		}
	}
	if !found {
		return "", errors.Wrapf(ErrRouteNotFound, "route %q", route)
	}

	names := placeholders(path)
	used := make(map[string]bool, len(names))
	positional := make([]interface{}, 0, len(names))
	for _, name := range names {
		v, ok := params[name]
		if !ok || v == "" {
			return "", errors.Wrapf(ErrMissingRouteParam, "route %q needs %q", route, name)
		}
		used[name] = true
		positional = append(positional, pathUnescaper.Replace(url.PathEscape(v)))
	}

	uri := b.baseURL + b.e.Reverse(route, positional...)

	query := url.Values{}
	for k, v := range params {
		if !used[k] {
			query.Set(k, v)
		}
	}
	if len(query) == 0 {
		return uri, nil
	}
	// Encode sorts by key.
	return uri + "?" + query.Encode(), nil
}

// placeholders lists the `:name` segments of an echo route path in order.
func placeholders(path string) []string {
	var names []string
	for _, segment := range strings.Split(path, "/") {
		if strings.HasPrefix(segment, ":") {
			names = append(names, segment[1:])
		}
	}
	return names
}

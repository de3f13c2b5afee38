package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishobooks/stacks/pkg/authors"
	"github.com/shishobooks/stacks/pkg/hateoas"
)

// RouteGetRoot is the entry point of the API.
const RouteGetRoot = "get_root"

// rootLinks is what a client can do from the entry point.
var rootLinks = hateoas.ResourceLinks{
	SelfRoute: RouteGetRoot,
	Actions: []hateoas.Action{
		{Rel: "authors", Method: http.MethodGet, Route: authors.RouteGetAuthors},
		{Rel: "create_author", Method: http.MethodPost, Route: authors.RouteCreateAuthor},
	},
}

type rootResponse struct {
	Links []hateoas.Link `json:"links"`
}

func registerRootRoutes(g *echo.Group) {
	g.GET("", getRoot).Name = RouteGetRoot
}

func getRoot(c echo.Context) error {
	lb := hateoas.NewBuilder(hateoas.NewEchoURIBuilder(c))
	links, err := lb.ForResource(rootLinks, nil, "")
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(c.JSON(http.StatusOK, rootResponse{Links: links}))
}

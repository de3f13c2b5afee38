package authors

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishobooks/stacks/pkg/config"
	"github.com/shishobooks/stacks/pkg/sortmap"
	"github.com/uptrace/bun"
)

// Route names, used to build links.
const (
	RouteGetAuthors             = "get_authors"
	RouteCreateAuthor           = "create_author"
	RouteGetAuthor              = "get_author"
	RouteDeleteAuthor           = "delete_author"
	RouteCreateAuthorCollection = "create_author_collection"
	RouteGetAuthorCollection    = "get_author_collection"
)

// SortKey identifies the author sort mapping in the catalog.
var SortKey = sortmap.Key{Public: "author", Internal: "authors"}

// SortMapping is the order_by vocabulary of authors. Age is derived from the
// date of birth, so sorting by it runs the other way.
var SortMapping = sortmap.Entry{
	Key: SortKey,
	Targets: map[string][]sortmap.Target{
		"id":    {{Column: "a.id"}},
		"genre": {{Column: "a.genre"}},
		"age":   {{Column: "a.date_of_birth", Revert: true}},
		"name":  {{Column: "a.first_name"}, {Column: "a.last_name"}},
	},
}

// RegisterRoutes registers the author and author collection routes on g. It
// fails if the author sort mapping is missing from catalog.
func RegisterRoutes(g *echo.Group, db *bun.DB, cfg *config.Config, catalog *sortmap.Catalog) error {
	mapping, err := catalog.Resolve(SortKey)
	if err != nil {
		return errors.WithStack(err)
	}

	h := &handler{
		cfg:           cfg,
		authorService: NewService(db),
		sortMapping:   mapping,
	}

	g.GET("/authors", h.list).Name = RouteGetAuthors
	g.POST("/authors", h.create).Name = RouteCreateAuthor
	g.OPTIONS("/authors", h.options)
	g.GET("/authors/:author_id", h.retrieve).Name = RouteGetAuthor
	g.POST("/authors/:author_id", h.blockCreation)
	g.DELETE("/authors/:author_id", h.delete).Name = RouteDeleteAuthor

	g.POST("/author-collections", h.createCollection).Name = RouteCreateAuthorCollection
	g.GET("/author-collections/:ids", h.retrieveCollection).Name = RouteGetAuthorCollection

	return nil
}

package books

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishobooks/stacks/pkg/config"
	"github.com/shishobooks/stacks/pkg/sortmap"
	"github.com/uptrace/bun"
)

// Route names, used to build links.
const (
	RouteGetBooksForAuthor            = "get_books_for_author"
	RouteCreateBookForAuthor          = "create_book_for_author"
	RouteGetBookForAuthor             = "get_book_for_author"
	RouteDeleteBookForAuthor          = "delete_book_for_author"
	RouteUpdateBookForAuthor          = "update_book_for_author"
	RoutePartiallyUpdateBookForAuthor = "partially_update_book_for_author"
)

// SortKey identifies the book sort mapping in the catalog.
var SortKey = sortmap.Key{Public: "book", Internal: "books"}

// SortMapping is the order_by vocabulary of books.
var SortMapping = sortmap.Entry{
	Key: SortKey,
	Targets: map[string][]sortmap.Target{
		"id":          {{Column: "b.id"}},
		"title":       {{Column: "b.title"}},
		"description": {{Column: "b.description"}},
	},
}

// RegisterRoutes registers the book routes nested under an author on g. It
// fails if the book sort mapping is missing from catalog.
func RegisterRoutes(g *echo.Group, db *bun.DB, cfg *config.Config, catalog *sortmap.Catalog) error {
	mapping, err := catalog.Resolve(SortKey)
	if err != nil {
		return errors.WithStack(err)
	}

	h := &handler{
		cfg:         cfg,
		bookService: NewService(db),
		sortMapping: mapping,
	}

	books := g.Group("/authors/:author_id/books")
	books.GET("", h.list).Name = RouteGetBooksForAuthor
	books.POST("", h.create).Name = RouteCreateBookForAuthor
	books.GET("/:book_id", h.retrieve).Name = RouteGetBookForAuthor
	books.DELETE("/:book_id", h.delete).Name = RouteDeleteBookForAuthor
	books.PUT("/:book_id", h.update).Name = RouteUpdateBookForAuthor
	books.PATCH("/:book_id", h.patch).Name = RoutePartiallyUpdateBookForAuthor

	return nil
}

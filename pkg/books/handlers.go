package books

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/stacks/pkg/config"
	"github.com/shishobooks/stacks/pkg/errcodes"
	"github.com/shishobooks/stacks/pkg/hateoas"
	"github.com/shishobooks/stacks/pkg/models"
	"github.com/shishobooks/stacks/pkg/paging"
	"github.com/shishobooks/stacks/pkg/sortmap"
)

type handler struct {
	cfg         *config.Config
	bookService *Service
	sortMapping sortmap.Mapping
}

// parseID normalizes a uuid path parameter. Anything that isn't a uuid can't
// name a row, so callers treat it as not found.
func parseID(raw string) (string, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// author resolves the author_id path parameter and makes sure the author
// exists.
func (h *handler) author(c echo.Context) (string, error) {
	authorID, ok := parseID(c.Param("author_id"))
	if !ok {
		return "", errcodes.NotFound("Author")
	}
	exists, err := h.bookService.AuthorExists(c.Request().Context(), authorID)
	if err != nil {
		return "", errors.WithStack(err)
	}
	if !exists {
		return "", errcodes.NotFound("Author")
	}
	return authorID, nil
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	params.Normalize(h.cfg.DefaultPageSize, h.cfg.MaxPageSize)

	if key, unknown := h.sortMapping.FirstUnknown(params.OrderBy); unknown {
		return errcodes.InvalidSortKey(key)
	}
	if field, unknown := Schema.FirstUnknown(params.Fields); unknown {
		return errcodes.UnknownField(field)
	}

	authorID, err := h.author(c)
	if err != nil {
		return err
	}

	orders, err := h.sortMapping.Expand(params.OrderBy)
	if err != nil {
		return errors.WithStack(err)
	}

	books, err := h.bookService.ListBooks(ctx, ListBooksOptions{
		AuthorID: &authorID,
		Search:   params.Search,
		Orders:   orders,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	page := paging.Map(paging.Paginate[*models.Book](paging.Slice[*models.Book](books), params.PageNumber, params.PageSize), NewResource)

	lb := hateoas.NewBuilder(hateoas.NewEchoURIBuilder(c))
	routeParams := map[string]string{"author_id": authorID}

	meta, err := hateoas.PageMetadata(lb, RouteGetBooksForAuthor, routeParams, params, page)
	if err != nil {
		return errors.WithStack(err)
	}
	header, err := meta.Header()
	if err != nil {
		return errors.WithStack(err)
	}
	c.Response().Header().Set(paging.HeaderName, header)

	value, err := ShapeAll(lb, page.Items, params.Fields)
	if err != nil {
		return errors.WithStack(err)
	}

	links, err := lb.ForPage(RouteGetBooksForAuthor, routeParams, params, page.HasNext(), page.HasPrevious())
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, hateoas.Collection{Value: value, Links: links}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	params := RetrieveBookQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	if field, unknown := Schema.FirstUnknown(params.Fields); unknown {
		return errcodes.UnknownField(field)
	}

	authorID, err := h.author(c)
	if err != nil {
		return err
	}
	bookID, ok := parseID(c.Param("book_id"))
	if !ok {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:       &bookID,
		AuthorID: &authorID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	lb := hateoas.NewBuilder(hateoas.NewEchoURIBuilder(c))
	shaped, err := Shape(lb, NewResource(book), params.Fields)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, shaped))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	authorID, err := h.author(c)
	if err != nil {
		return err
	}

	book := &models.Book{
		AuthorID:    authorID,
		Title:       params.Title,
		Description: params.Description,
	}
	if err := h.bookService.CreateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}
	log.Info("book created", logger.Data{"author_id": authorID, "book_id": book.ID})

	return h.respondCreated(c, book)
}

// update replaces a book. A book id that doesn't exist yet is created with
// that id.
func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	authorID, err := h.author(c)
	if err != nil {
		return err
	}
	bookID, ok := parseID(c.Param("book_id"))
	if !ok {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:       &bookID,
		AuthorID: &authorID,
	})
	if errors.Is(err, errcodes.NotFound("Book")) {
		if err := h.ensureIDFree(c, bookID); err != nil {
			return err
		}
		book = &models.Book{
			ID:          bookID,
			AuthorID:    authorID,
			Title:       params.Title,
			Description: params.Description,
		}
		if err := h.bookService.CreateBook(ctx, book); err != nil {
			return errors.WithStack(err)
		}
		log.Info("book created by upsert", logger.Data{"author_id": authorID, "book_id": book.ID})
		return h.respondCreated(c, book)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	book.Title = params.Title
	book.Description = params.Description
	err = h.bookService.UpdateBook(ctx, book, UpdateBookOptions{Columns: []string{"title", "description"}})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

// patch applies the fields that were sent. Like update, it creates the book
// when the id doesn't exist yet, in which case a title is required.
func (h *handler) patch(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	params := PatchBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	authorID, err := h.author(c)
	if err != nil {
		return err
	}
	bookID, ok := parseID(c.Param("book_id"))
	if !ok {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:       &bookID,
		AuthorID: &authorID,
	})
	created := false
	if errors.Is(err, errcodes.NotFound("Book")) {
		if err := h.ensureIDFree(c, bookID); err != nil {
			return err
		}
		book = &models.Book{ID: bookID, AuthorID: authorID}
		created = true
	} else if err != nil {
		return errors.WithStack(err)
	}

	opts := UpdateBookOptions{Columns: []string{}}
	if params.Title != nil && *params.Title != book.Title {
		book.Title = *params.Title
		opts.Columns = append(opts.Columns, "title")
	}
	if params.Description != nil {
		book.Description = params.Description
		opts.Columns = append(opts.Columns, "description")
	}

	if book.Title == "" {
		return errcodes.ValidationError(`"title" is required`)
	}
	if book.Description != nil && *book.Description == book.Title {
		return errcodes.ValidationError(`"description" must be different from "title"`)
	}

	if created {
		if err := h.bookService.CreateBook(ctx, book); err != nil {
			return errors.WithStack(err)
		}
		log.Info("book created by upsert", logger.Data{"author_id": authorID, "book_id": book.ID})
		return h.respondCreated(c, book)
	}

	if err := h.bookService.UpdateBook(ctx, book, opts); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	authorID, err := h.author(c)
	if err != nil {
		return err
	}
	bookID, ok := parseID(c.Param("book_id"))
	if !ok {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:       &bookID,
		AuthorID: &authorID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.bookService.DeleteBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}
	log.Info("book deleted", logger.Data{"author_id": authorID, "book_id": book.ID})

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

// ensureIDFree makes sure an upsert doesn't take over the id of a book that
// belongs to another author.
func (h *handler) ensureIDFree(c echo.Context, bookID string) error {
	exists, err := h.bookService.BookExists(c.Request().Context(), bookID)
	if err != nil {
		return errors.WithStack(err)
	}
	if exists {
		return errcodes.Conflict("Book")
	}
	return nil
}

func (h *handler) respondCreated(c echo.Context, book *models.Book) error {
	lb := hateoas.NewBuilder(hateoas.NewEchoURIBuilder(c))
	shaped, err := Shape(lb, NewResource(book), "")
	if err != nil {
		return errors.WithStack(err)
	}
	self, err := lb.Link(RouteGetBookForAuthor, linkParams(NewResource(book)), hateoas.RelSelf, http.MethodGet)
	if err != nil {
		return errors.WithStack(err)
	}
	c.Response().Header().Set(echo.HeaderLocation, self.Href)
	return errors.WithStack(c.JSON(http.StatusCreated, shaped))
}

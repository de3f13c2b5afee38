package authors

import (
	"net/http"
	"strings"
	"time"

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

// allowedMethods is what OPTIONS /authors advertises.
var allowedMethods = []string{http.MethodGet, http.MethodOptions, http.MethodPost}

type handler struct {
	cfg           *config.Config
	authorService *Service
	sortMapping   sortmap.Mapping
}

func parseID(raw string) (string, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// newAuthor turns a bound creation payload into a model, books included.
func newAuthor(payload CreateAuthorPayload) *models.Author {
	// The "date" tag has already checked the layout.
	dob, _ := time.Parse(time.DateOnly, payload.DateOfBirth)
	author := &models.Author{
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		DateOfBirth: dob,
		Genre:       payload.Genre,
	}
	for _, b := range payload.Books {
		author.Books = append(author.Books, &models.Book{
			Title:       b.Title,
			Description: b.Description,
		})
	}
	return author
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListAuthorsQuery{}
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

	orders, err := h.sortMapping.Expand(params.OrderBy)
	if err != nil {
		return errors.WithStack(err)
	}

	limit := params.PageSize
	offset := paging.Offset(params.PageNumber, params.PageSize)
	authors, total, err := h.authorService.ListAuthorsWithTotal(ctx, ListAuthorsOptions{
		Genre:  params.Genre,
		Search: params.Search,
		Orders: orders,
		Limit:  &limit,
		Offset: &offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	page := paging.Map(paging.New(authors, total, params.PageNumber, params.PageSize), NewResource)

	lb := hateoas.NewBuilder(hateoas.NewEchoURIBuilder(c))

	meta, err := hateoas.PageMetadata(lb, RouteGetAuthors, nil, params, page)
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

	links, err := lb.ForPage(RouteGetAuthors, nil, params, page.HasNext(), page.HasPrevious())
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, hateoas.Collection{Value: value, Links: links}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	params := RetrieveAuthorQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	if field, unknown := Schema.FirstUnknown(params.Fields); unknown {
		return errcodes.UnknownField(field)
	}

	id, ok := parseID(c.Param("author_id"))
	if !ok {
		return errcodes.NotFound("Author")
	}

	author, err := h.authorService.RetrieveAuthor(ctx, RetrieveAuthorOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	lb := hateoas.NewBuilder(hateoas.NewEchoURIBuilder(c))
	shaped, err := Shape(lb, NewResource(author), params.Fields)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, shaped))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	params := CreateAuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	author := newAuthor(params)
	if err := h.authorService.CreateAuthor(ctx, author); err != nil {
		return errors.WithStack(err)
	}
	log.Info("author created", logger.Data{"author_id": author.ID, "books": len(author.Books)})

	lb := hateoas.NewBuilder(hateoas.NewEchoURIBuilder(c))
	r := NewResource(author)
	shaped, err := Shape(lb, r, "")
	if err != nil {
		return errors.WithStack(err)
	}
	self, err := lb.Link(RouteGetAuthor, linkParams(r), hateoas.RelSelf, http.MethodGet)
	if err != nil {
		return errors.WithStack(err)
	}
	c.Response().Header().Set(echo.HeaderLocation, self.Href)

	return errors.WithStack(c.JSON(http.StatusCreated, shaped))
}

// blockCreation answers a POST to an author's own URI. Authors can't be
// created with a client chosen id.
func (h *handler) blockCreation(c echo.Context) error {
	id, ok := parseID(c.Param("author_id"))
	if !ok {
		return errcodes.NotFound("Author")
	}

	_, err := h.authorService.RetrieveAuthor(c.Request().Context(), RetrieveAuthorOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}
	return errcodes.Conflict("Author")
}

func (h *handler) options(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderAllow, strings.Join(allowedMethods, ","))
	return errors.WithStack(c.NoContent(http.StatusOK))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	id, ok := parseID(c.Param("author_id"))
	if !ok {
		return errcodes.NotFound("Author")
	}

	author, err := h.authorService.RetrieveAuthor(ctx, RetrieveAuthorOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.authorService.DeleteAuthor(ctx, author); err != nil {
		return errors.WithStack(err)
	}
	log.Info("author deleted", logger.Data{"author_id": author.ID})

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

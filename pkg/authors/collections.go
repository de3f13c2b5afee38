package authors

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/stacks/pkg/errcodes"
	"github.com/shishobooks/stacks/pkg/hateoas"
	"github.com/shishobooks/stacks/pkg/models"
)

// formatIDs renders ids the way the collection route expects them: "(a,b)".
func formatIDs(ids []string) string {
	return "(" + strings.Join(ids, ",") + ")"
}

// parseIDs reads an "(a,b)" id list. The parentheses are optional. Duplicate
// ids are collapsed, keeping the first occurrence.
func parseIDs(raw string) ([]string, error) {
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "(")
	raw = strings.TrimSuffix(raw, ")")

	seen := map[string]bool{}
	ids := []string{}
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		id, ok := parseID(token)
		if !ok {
			return nil, errcodes.BadRequest(fmt.Sprintf("%q is not a valid id.", token))
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, errcodes.BadRequest("At least one id is required.")
	}
	return ids, nil
}

// createCollection creates several authors at once. It responds with the
// created authors and points Location at the collection that holds them.
func (h *handler) createCollection(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	params := []CreateAuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	authors := make([]*models.Author, 0, len(params))
	for _, p := range params {
		authors = append(authors, newAuthor(p))
	}

	if err := h.authorService.CreateAuthors(ctx, authors); err != nil {
		return errors.WithStack(err)
	}

	ids := make([]string, 0, len(authors))
	resources := make([]*Resource, 0, len(authors))
	for _, author := range authors {
		ids = append(ids, author.ID)
		resources = append(resources, NewResource(author))
	}
	log.Info("author collection created", logger.Data{"author_ids": ids})

	lb := hateoas.NewBuilder(hateoas.NewEchoURIBuilder(c))
	value, err := ShapeAll(lb, resources, "")
	if err != nil {
		return errors.WithStack(err)
	}
	self, err := lb.Link(RouteGetAuthorCollection, map[string]string{"ids": formatIDs(ids)}, hateoas.RelSelf, http.MethodGet)
	if err != nil {
		return errors.WithStack(err)
	}
	c.Response().Header().Set(echo.HeaderLocation, self.Href)

	return errors.WithStack(c.JSON(http.StatusCreated, value))
}

// retrieveCollection returns the authors named by an id list, in the order
// they were asked for. If any of them doesn't exist, the whole request is
// not found.
func (h *handler) retrieveCollection(c echo.Context) error {
	ctx := c.Request().Context()

	params := RetrieveAuthorQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	if field, unknown := Schema.FirstUnknown(params.Fields); unknown {
		return errcodes.UnknownField(field)
	}

	ids, err := parseIDs(c.Param("ids"))
	if err != nil {
		return err
	}

	authors, err := h.authorService.RetrieveAuthors(ctx, ids)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(authors) != len(ids) {
		return errcodes.NotFound("Author")
	}

	byID := make(map[string]*models.Author, len(authors))
	for _, author := range authors {
		byID[author.ID] = author
	}
	resources := make([]*Resource, 0, len(ids))
	for _, id := range ids {
		resources = append(resources, NewResource(byID[id]))
	}

	lb := hateoas.NewBuilder(hateoas.NewEchoURIBuilder(c))
	value, err := ShapeAll(lb, resources, params.Fields)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, value))
}

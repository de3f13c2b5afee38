package testutils

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishobooks/stacks/pkg/models"
	"github.com/shishobooks/stacks/pkg/seed"
	"github.com/uptrace/bun"
)

type handler struct {
	db *bun.DB
}

// seedResponse is the response body for seeding the sample data.
type seedResponse struct {
	Created int `json:"created"`
}

// seed loads the sample authors and books.
// POST /test/seed.
func (h *handler) seed(c echo.Context) error {
	created, err := seed.Run(c.Request().Context(), h.db)
	if err != nil {
		return errors.Wrap(err, "failed to seed")
	}

	return c.JSON(http.StatusCreated, seedResponse{Created: created})
}

// deleteAllAuthorsResponse is the response body for deleting all authors.
type deleteAllAuthorsResponse struct {
	Deleted int `json:"deleted"`
}

// deleteAllAuthors deletes every author. Their books go with them.
// DELETE /test/authors.
func (h *handler) deleteAllAuthors(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.db.NewDelete().
		Model((*models.Author)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete authors")
	}

	deleted, _ := result.RowsAffected()

	return c.JSON(http.StatusOK, deleteAllAuthorsResponse{
		Deleted: int(deleted),
	})
}

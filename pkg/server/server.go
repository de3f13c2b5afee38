package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/shishobooks/stacks/pkg/authors"
	"github.com/shishobooks/stacks/pkg/binder"
	"github.com/shishobooks/stacks/pkg/books"
	"github.com/shishobooks/stacks/pkg/config"
	"github.com/shishobooks/stacks/pkg/errcodes"
	"github.com/shishobooks/stacks/pkg/paging"
	"github.com/shishobooks/stacks/pkg/sortmap"
	"github.com/shishobooks/stacks/pkg/testutils"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e, err := newEcho(cfg, db)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func newEcho(cfg *config.Config, db *bun.DB) (*echo.Echo, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		// Plain OPTIONS requests (no Origin) reach the routes, so they can
		// answer with their own Allow header.
		Skipper: func(c echo.Context) bool {
			return c.Request().Header.Get(echo.HeaderOrigin) == ""
		},
		ExposeHeaders: []string{paging.HeaderName, echo.HeaderLocation},
	}))

	health.RegisterRoutes(e)

	// Every sort mapping is registered here, before any route resolves one.
	catalog, err := sortmap.NewCatalog(authors.SortMapping, books.SortMapping)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	api := e.Group("/api")
	registerRootRoutes(api)
	if err := authors.RegisterRoutes(api, db, cfg, catalog); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := books.RegisterRoutes(api, db, cfg, catalog); err != nil {
		return nil, errors.WithStack(err)
	}

	if cfg.Environment == config.EnvironmentTest {
		testutils.RegisterRoutes(e, db)
	}

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	return e, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}

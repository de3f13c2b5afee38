package errcodes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHandle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			"custom error",
			errors.WithStack(InvalidSortKey("shoe_size")),
			http.StatusBadRequest,
			`{"error":{"code":"invalid_sort_key","message":"Can't sort by \"shoe_size\".","status_code":400}}`,
		},
		{
			"echo error",
			echo.ErrNotFound,
			http.StatusNotFound,
			`{"error":{"code":"not_found","message":"Not Found","status_code":404}}`,
		},
		{
			"generic error hides its message",
			errors.New("disk on fire"),
			http.StatusInternalServerError,
			`{"error":{"code":"internal_server_error","message":"Internal Server Error","status_code":500}}`,
		},
		{
			"conflict",
			Conflict("Author"),
			http.StatusConflict,
			`{"error":{"code":"conflict","message":"Author already exists.","status_code":409}}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(tt *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHandler().Handle(tc.err, c)

			assert.Equal(tt, tc.status, rec.Code)
			assert.JSONEq(tt, tc.body, rec.Body.String())
		})
	}
}

func TestError_Is(t *testing.T) {
	t.Parallel()

	err := errors.Wrap(UnknownField("age"), "shaping")
	assert.True(t, errors.Is(err, UnknownField("other")))
	assert.False(t, errors.Is(err, InvalidSortKey("age")))
}

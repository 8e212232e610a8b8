package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var got Pagination
	app.Get("/x", func(c *fiber.Ctx) error {
		got = parsePagination(c)
		return c.SendStatus(http.StatusOK)
	})

	cases := []struct {
		name  string
		query string
		want  Pagination
	}{
		{"absent params stay zero for the service defaults", "", Pagination{}},
		{"explicit values pass through", "?page=3&limit=10", Pagination{Page: 3, Limit: 10}},
		{"negative values are clamped", "?page=-1&limit=-5", Pagination{}},
		{"non-numeric values fall back", "?page=abc&limit=xyz", Pagination{}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x"+tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "comment ID", humanizeParam("commentId"))
	assert.Equal(t, "user ID", humanizeParam("userId"))
	assert.Equal(t, "slug", humanizeParam("slug"))
}

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"comercio/internal/middleware"
	"comercio/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(tokens *services.TokenService) *fiber.App {
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Get("/private", middleware.AuthRequired(tokens), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("subject").(string))
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour)
	app := newApp(tokens)

	valid, err := tokens.IssueToken("cli")
	require.NoError(t, err)
	foreign, err := services.NewTokenService("other", time.Hour).IssueToken("cli")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"foreign signature", "Bearer " + foreign, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

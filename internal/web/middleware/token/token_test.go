package token

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoMailComposer/GoMailComposer/internal/apitoken"
)

func TestNew(t *testing.T) {
	token, hash, err := apitoken.New()
	require.NoError(t, err)

	testCases := []struct {
		name       string
		cfg        Config
		header     string
		wantStatus int
	}{
		{name: "no hash configured", cfg: Config{}, wantStatus: fiber.StatusOK},
		{name: "valid token", cfg: Config{Hash: hash}, header: "Bearer " + token, wantStatus: fiber.StatusOK},
		{name: "missing header", cfg: Config{Hash: hash}, wantStatus: fiber.StatusUnauthorized},
		{name: "wrong token", cfg: Config{Hash: hash}, header: "Bearer nope", wantStatus: fiber.StatusUnauthorized},
		{name: "wrong scheme", cfg: Config{Hash: hash}, header: "Basic " + token, wantStatus: fiber.StatusUnauthorized},
		{
			name:       "skipped by next",
			cfg:        Config{Hash: hash, Next: func(*fiber.Ctx) bool { return true }},
			wantStatus: fiber.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(New(tc.cfg))
			app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

			req := httptest.NewRequest(fiber.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			if tc.wantStatus == fiber.StatusUnauthorized {
				assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
			}
		})
	}
}

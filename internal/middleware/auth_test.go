package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/ogc16/FitnessApp/pkg/utils"
	"github.com/stretchr/testify/require"
)

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthRequired("secret"), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string) + "|" + c.Locals("email").(string))
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	token, _, err := utils.GenerateToken("u-1", "a@example.com", "secret")
	require.NoError(t, err)
	foreign, _, err := utils.GenerateToken("u-1", "a@example.com", "other")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := newProtectedApp().Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, tc.status, resp.StatusCode)

			if tc.status == http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				require.Equal(t, "u-1|a@example.com", string(body))
			}
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newRBACApp(role interface{}) *fiber.App {
	app := fiber.New()
	app.Get("/admin", func(c *fiber.Ctx) error {
		if role != nil {
			c.Locals("user_role", role)
		}
		return c.Next()
	}, RequireRole("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name string
		role interface{}
		want int
	}{
		{name: "admin allowed", role: "admin", want: http.StatusOK},
		{name: "case and whitespace normalized", role: "  Admin ", want: http.StatusOK},
		{name: "member rejected", role: "member", want: http.StatusForbidden},
		{name: "missing role rejected", role: nil, want: http.StatusForbidden},
		{name: "non-string role rejected", role: 42, want: http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newRBACApp(tc.role)
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		header string
		key    string
		want   int
	}{
		{"Disabled", Config{}, "", "", 200},
		{"Valid", Config{ApiKey: "secret"}, DefaultHeader, "secret", 200},
		{"Missing", Config{ApiKey: "secret"}, "", "", 401},
		{"Wrong", Config{ApiKey: "secret"}, DefaultHeader, "guess", 401},
		{"CustomHeader", Config{ApiKey: "secret", Header: "Authorization"}, "Authorization", "secret", 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(New(tt.cfg))
			app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.key)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

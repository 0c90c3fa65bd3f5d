package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// DefaultHeader is the request header checked for the API key.
const DefaultHeader = "X-API-Key"

// Config holds configuration for the auth middleware.
type Config struct {
	// ApiKey is the expected key. Empty lets every request through.
	ApiKey string
	// Header overrides DefaultHeader.
	Header string
}

// New returns a middleware rejecting requests without the configured API key.
func New(cfg Config) fiber.Handler {
	header := cfg.Header
	if header == "" {
		header = DefaultHeader
	}
	want := []byte(cfg.ApiKey)

	return func(c *fiber.Ctx) error {
		if len(want) == 0 {
			return c.Next()
		}

		got := []byte(c.Get(header))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or missing API key"})
		}
		return c.Next()
	}
}

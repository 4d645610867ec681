package middlewares

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"exusiai.dev/cardrank/internal/pkg/pgerr"
)

const bearerPrefix = "Bearer "

// AdminKey guards a route group with a static bearer key. An empty key
// disables the group entirely.
func AdminKey(key string) fiber.Handler {
	if key == "" {
		log.Info().
			Str("evt.name", "http.admin.disabled").
			Msg("admin key is not configured; admin endpoints are disabled")

		return func(c *fiber.Ctx) error {
			return pgerr.ErrNotFound
		}
	}

	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(auth, bearerPrefix) {
			return pgerr.ErrUnauthorized.Msg("missing bearer token")
		}

		given := strings.TrimPrefix(auth, bearerPrefix)
		if subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
			return pgerr.ErrUnauthorized.Msg("invalid bearer token")
		}

		return c.Next()
	}
}

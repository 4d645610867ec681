package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"exusiai.dev/cardrank/internal/pkg/pgerr"
)

// RangeLimit rate limits ranking requests over a custom date range per client
// IP. Requests without from or to hit the warmed all-time ranking and are
// never limited. A non-positive max disables the limiter.
func RangeLimit(max int, window time.Duration, storage fiber.Storage) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return limiter.New(limiter.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Query("from") == "" && c.Query("to") == ""
		},
		Max:        max,
		Expiration: window,
		Storage:    storage,
		LimitReached: func(c *fiber.Ctx) error {
			return pgerr.ErrTooManyRequests
		},
	})
}

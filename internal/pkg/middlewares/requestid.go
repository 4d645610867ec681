package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"exusiai.dev/cardrank/internal/constant"
	"exusiai.dev/cardrank/internal/pkg/flog"
)

// RequestID copies the id assigned by the logger chain into ctx.Locals.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := flog.IDFromFiberCtx(c)
		if ok {
			c.Locals(constant.ContextKeyRequestID, id.String())
		}
		return c.Next()
	}
}

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"exusiai.dev/cardrank/internal/pkg/pgerr"
)

func Accepts(mimes ...string) func(ctx *fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		if ctx.Accepts(mimes...) != "" {
			return ctx.Next()
		}

		return pgerr.ErrInvalidReq.Msg("invalid or missing Accept header: accepts %s", strings.Join(mimes, ", "))
	}
}

var AcceptsJSON = Accepts(fiber.MIMEApplicationJSON)

package meta

import (
	"github.com/gofiber/fiber/v2"

	"exusiai.dev/cardrank/internal/pkg/bininfo"
)

func RegisterIndex(app *fiber.App) {
	app.Get("/api", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Cardrank card usage ranking API",
			"version": bininfo.Version,
		})
	})
}

package meta

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"

	"exusiai.dev/cardrank/internal/pkg/bininfo"
	"exusiai.dev/cardrank/internal/pkg/cachectrl"
	"exusiai.dev/cardrank/internal/server/svr"
	"exusiai.dev/cardrank/internal/service"
)

type HealthService interface {
	Ping(ctx context.Context) error
}

type Meta struct {
	HealthService HealthService
}

func RegisterMeta(meta *svr.Meta, health *service.Health) {
	c := &Meta{
		HealthService: health,
	}
	c.Register(meta)
}

func (c *Meta) Register(r fiber.Router) {
	r.Get("/bininfo", c.BinInfo)

	r.Get("/health", cache.New(cache.Config{
		// cache it for a second to mitigate potential DDoS
		Expiration: time.Second,
	}), c.Health)
}

func (c *Meta) BinInfo(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"version": bininfo.Version,
		"build":   bininfo.BuildTime,
	})
}

func (c *Meta) Health(ctx *fiber.Ctx) error {
	cachectrl.OptOut(ctx)

	if err := c.HealthService.Ping(ctx.UserContext()); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"status": "ok",
	})
}

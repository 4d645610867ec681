package meta

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"exusiai.dev/cardrank/internal/model/cache"
	"exusiai.dev/cardrank/internal/model/types"
	"exusiai.dev/cardrank/internal/pkg/pgerr"
	"exusiai.dev/cardrank/internal/server/svr"
	"exusiai.dev/cardrank/internal/service"
	"exusiai.dev/cardrank/internal/util/rekuest"
)

type AdminService interface {
	PurgeCache(name string) error
	CacheNames() []string
	Refresh(ctx context.Context) error
}

type AdminController struct {
	AdminService AdminService
}

func RegisterAdmin(admin *svr.Admin, adminService *service.Admin) {
	c := &AdminController{
		AdminService: adminService,
	}
	c.Register(admin)
}

func (c *AdminController) Register(r fiber.Router) {
	r.Get("/caches", c.GetCacheNames)
	r.Post("/purge", c.PurgeCache)
	r.Post("/refresh", c.Refresh)
}

func (c *AdminController) GetCacheNames(ctx *fiber.Ctx) error {
	return ctx.JSON(types.CacheNamesResponse{
		Names: c.AdminService.CacheNames(),
	})
}

func (c *AdminController) PurgeCache(ctx *fiber.Ctx) error {
	var request types.PurgeCacheRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	if err := c.AdminService.PurgeCache(request.Name); err != nil {
		if errors.Is(err, cache.ErrUnknownCache) {
			return pgerr.ErrNotFound.Msg("unknown cache name %q; see /api/_/admin/caches", request.Name)
		}
		return err
	}

	return ctx.JSON(types.PurgeCacheResponse{
		Purged: request.Name,
	})
}

func (c *AdminController) Refresh(ctx *fiber.Ctx) error {
	if err := c.AdminService.Refresh(ctx.UserContext()); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

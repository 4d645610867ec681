package v1

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"exusiai.dev/cardrank/internal/model"
	"exusiai.dev/cardrank/internal/model/types"
	"exusiai.dev/cardrank/internal/pkg/cache"
	"exusiai.dev/cardrank/internal/pkg/cachectrl"
	"exusiai.dev/cardrank/internal/server/svr"
	"exusiai.dev/cardrank/internal/service"
	"exusiai.dev/cardrank/internal/util/rekuest"
)

type OriginalityService interface {
	GetOriginalityRanking(ctx context.Context, deduplicate bool) (*cache.Entry[*model.RankingResult], error)
	GetOriginalityMap(ctx context.Context, deduplicate bool) (*cache.Entry[*model.OriginalityMapResult], error)
	GetTiers() []model.OriginalityTier
}

type OriginalityController struct {
	Originality OriginalityService
}

func RegisterOriginality(v1 *svr.V1, originality *service.Originality) {
	c := &OriginalityController{
		Originality: originality,
	}
	c.Register(v1)
}

func (c *OriginalityController) Register(r fiber.Router) {
	r.Get("/originality", c.GetOriginalityRanking)
	r.Get("/originality/map", c.GetOriginalityMap)
	r.Get("/originality/tiers", c.GetTiers)
}

// @Summary  Get the Ranking Originality Points Are Derived From
// @Tags     Originality
// @Produce  json
// @Param    deduplicate  query     bool  false  "Count a card once per deck"
// @Success  200          {object}  model.RankingResult
// @Failure  500          {object}  pgerr.APIError  "Match data could not be fetched"
// @Router   /api/originality [GET]
func (c *OriginalityController) GetOriginalityRanking(ctx *fiber.Ctx) error {
	var req types.PolicyRequest
	if err := rekuest.ValidQuery(ctx, &req); err != nil {
		return err
	}

	entry, err := c.Originality.GetOriginalityRanking(ctx.UserContext(), req.Deduplicate)
	if err != nil {
		return err
	}

	cachectrl.OptInEntry(ctx, entry)
	return ctx.JSON(entry.Value)
}

// @Summary  Get Originality Points of Every Card
// @Tags     Originality
// @Produce  json
// @Param    deduplicate  query     bool  false  "Count a card once per deck"
// @Success  200          {object}  model.OriginalityMapResult
// @Failure  500          {object}  pgerr.APIError  "Match data could not be fetched"
// @Router   /api/originality/map [GET]
func (c *OriginalityController) GetOriginalityMap(ctx *fiber.Ctx) error {
	var req types.PolicyRequest
	if err := rekuest.ValidQuery(ctx, &req); err != nil {
		return err
	}

	entry, err := c.Originality.GetOriginalityMap(ctx.UserContext(), req.Deduplicate)
	if err != nil {
		return err
	}

	cachectrl.OptInEntry(ctx, entry)
	return ctx.JSON(entry.Value)
}

// @Summary  Get the Originality Tier Table
// @Tags     Originality
// @Produce  json
// @Success  200  {array}  model.OriginalityTier
// @Router   /api/originality/tiers [GET]
func (c *OriginalityController) GetTiers(ctx *fiber.Ctx) error {
	return ctx.JSON(c.Originality.GetTiers())
}

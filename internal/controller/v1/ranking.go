package v1

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"exusiai.dev/cardrank/internal/app/appconfig"
	"exusiai.dev/cardrank/internal/model"
	"exusiai.dev/cardrank/internal/model/types"
	"exusiai.dev/cardrank/internal/pkg/cache"
	"exusiai.dev/cardrank/internal/pkg/cachectrl"
	"exusiai.dev/cardrank/internal/pkg/fiberstore"
	"exusiai.dev/cardrank/internal/pkg/middlewares"
	"exusiai.dev/cardrank/internal/server/svr"
	"exusiai.dev/cardrank/internal/service"
	"exusiai.dev/cardrank/internal/util/rekuest"
)

type RankingService interface {
	GetRanking(ctx context.Context, query model.RankingQuery) (*cache.Entry[*model.RankingResult], error)
}

type WeightedRankingService interface {
	GetWeightedRanking(ctx context.Context, deduplicate bool) (*cache.Entry[*model.RankingResult], error)
}

type RankingController struct {
	Rankings RankingService
	Weighted WeightedRankingService
	Location *time.Location
}

func RegisterRanking(v1 *svr.V1, rankings *service.Ranking, weighted *service.WeightedRanking, conf *appconfig.Config, store cache.Store) {
	c := &RankingController{
		Rankings: rankings,
		Weighted: weighted,
		Location: conf.TimeZone.Location,
	}
	c.Register(v1, middlewares.RangeLimit(conf.RangeLimitMax, conf.RangeLimitWindow, fiberstore.New(store, "rangeLimit")))
}

// Register mounts the handlers. rangeLimit runs ahead of the plain ranking
// handler only.
func (c *RankingController) Register(r fiber.Router, rangeLimit ...fiber.Handler) {
	r.Get("/ranking", append(rangeLimit, c.GetRanking)...)
	r.Get("/ranking/weighted", c.GetWeightedRanking)
}

// @Summary  Get Card Usage Ranking
// @Tags     Ranking
// @Produce  json
// @Param    deduplicate  query     bool    false  "Count a card once per deck"
// @Param    from         query     string  false  "Inclusive start day, YYYY-MM-DD"
// @Param    to           query     string  false  "Exclusive end day, YYYY-MM-DD"
// @Success  200          {object}  model.RankingResult
// @Failure  400          {object}  pgerr.APIError  "Invalid or out of order dates"
// @Failure  500          {object}  pgerr.APIError  "Match data could not be fetched"
// @Router   /api/ranking [GET]
func (c *RankingController) GetRanking(ctx *fiber.Ctx) error {
	var req types.RankingRequest
	if err := rekuest.ValidQuery(ctx, &req); err != nil {
		return err
	}

	entry, err := c.Rankings.GetRanking(ctx.UserContext(), req.Query(c.Location))
	if err != nil {
		return err
	}

	cachectrl.OptInEntry(ctx, entry)
	return ctx.JSON(entry.Value)
}

// @Summary  Get Weighted Ranking of the Last Three Weeks
// @Tags     Ranking
// @Produce  json
// @Param    deduplicate  query     bool  false  "Count a card once per deck"
// @Success  200          {object}  model.RankingResult
// @Failure  500          {object}  pgerr.APIError  "Match data could not be fetched"
// @Router   /api/ranking/weighted [GET]
func (c *RankingController) GetWeightedRanking(ctx *fiber.Ctx) error {
	var req types.PolicyRequest
	if err := rekuest.ValidQuery(ctx, &req); err != nil {
		return err
	}

	entry, err := c.Weighted.GetWeightedRanking(ctx.UserContext(), req.Deduplicate)
	if err != nil {
		return err
	}

	cachectrl.OptInEntry(ctx, entry)
	return ctx.JSON(entry.Value)
}

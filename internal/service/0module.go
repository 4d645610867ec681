package service

import (
	"go.uber.org/fx"

	"exusiai.dev/cardrank/internal/model/cache"
	"exusiai.dev/cardrank/internal/repo"
)

func Module() fx.Option {
	return fx.Module("service", fx.Provide(
		cache.New,
		func(r *repo.Card) CardSource { return r },
		func(r *repo.Match) MatchPager { return r },
		NewCatalog,
		NewMatchSource,
		NewRanking,
		NewWeightedRanking,
		NewOriginality,
		NewHealth,
		NewAdmin,
	))
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"exusiai.dev/cardrank/internal/app/appconfig"
	"exusiai.dev/cardrank/internal/model"
	"exusiai.dev/cardrank/internal/model/cache"
	pkgcache "exusiai.dev/cardrank/internal/pkg/cache"
	"exusiai.dev/cardrank/internal/pkg/gameweek"
	"exusiai.dev/cardrank/internal/pkg/observability"
	"exusiai.dev/cardrank/internal/util/rankutil"
)

type RankingProvider interface {
	GetRanking(ctx context.Context, query model.RankingQuery) (*pkgcache.Entry[*model.RankingResult], error)
}

type WeightedRanking struct {
	Catalog   *Catalog
	Rankings  RankingProvider
	Caches    *cache.Registry
	TTL       time.Duration
	AnchorDay time.Weekday
	Location  *time.Location

	clock func() time.Time
}

func NewWeightedRanking(catalog *Catalog, rankings *Ranking, caches *cache.Registry, conf *appconfig.Config) *WeightedRanking {
	return &WeightedRanking{
		Catalog:   catalog,
		Rankings:  rankings,
		Caches:    caches,
		TTL:       RankingTTL,
		AnchorDay: conf.WeekAnchorDay.Weekday(),
		Location:  conf.TimeZone.Location,
		clock:     time.Now,
	}
}

// Weeks returns the weighted weeks as of now, latest first.
func (s *WeightedRanking) Weeks() []gameweek.Window {
	return gameweek.Windows(s.clock(), s.AnchorDay, s.Location, len(rankutil.WeekWeights))
}

// WeekKey identifies a weighted result by counting policy, latest week in the
// configured zone and catalog content.
func (s *WeightedRanking) WeekKey(deduplicate bool, latest gameweek.Window, catalog *model.Catalog) string {
	return fmt.Sprintf("%t|%s|%s|%s", deduplicate, latest.Start.In(s.Location).Format(model.DateLayout), s.Location, catalog.Fingerprint())
}

// Cache: weightedRanking#deduplicate|week|zone|catalog, RankingTTL
func (s *WeightedRanking) GetWeightedRanking(ctx context.Context, deduplicate bool) (*pkgcache.Entry[*model.RankingResult], error) {
	catalog, err := s.Catalog.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	return s.getForWeeks(ctx, deduplicate, s.Weeks(), catalog)
}

// getForWeeks serves the weighted ranking over weeks, which must be what
// Weeks returned at some instant.
func (s *WeightedRanking) getForWeeks(ctx context.Context, deduplicate bool, weeks []gameweek.Window, catalog *model.Catalog) (*pkgcache.Entry[*model.RankingResult], error) {
	key := s.WeekKey(deduplicate, weeks[0], catalog)

	return s.Caches.WeightedRankings.MutexGetSet(ctx, key, func(ctx context.Context) (*model.RankingResult, error) {
		start := time.Now()
		result, err := s.compose(ctx, deduplicate, weeks, catalog)
		if err != nil {
			return nil, err
		}

		observability.RankingComputeDuration.WithLabelValues("weighted").Observe(time.Since(start).Seconds())
		log.Info().
			Str("evt.name", "ranking.weighted_computed").
			Str("key", key).
			Int("matches", result.TotalMatches).
			Dur("dur", time.Since(start)).
			Msg("weighted ranking computed")
		return result, nil
	}, s.TTL)
}

// compose fetches every week concurrently. Each week goes through the cached
// single window path under its own key; one failing week fails the whole.
func (s *WeightedRanking) compose(ctx context.Context, deduplicate bool, weeks []gameweek.Window, catalog *model.Catalog) (*model.RankingResult, error) {
	rankings := make([]rankutil.WeightedRanking, len(weeks))

	eg, ectx := errgroup.WithContext(ctx)
	for i, week := range weeks {
		i, week := i, week
		eg.Go(func() error {
			entry, err := s.Rankings.GetRanking(ectx, model.RankingQuery{
				Deduplicate: deduplicate,
				Range:       model.NewDateRange(week.Start, week.End),
			})
			if err != nil {
				return errors.Wrapf(err, "week %d (%s)", i+1, week.Start.Format(model.DateLayout))
			}
			rankings[i] = rankutil.WeightedRanking{
				Ranking: entry.Value,
				Weight:  rankutil.WeekWeights[i],
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return rankutil.ComposeWeighted(rankings, catalog, s.clock()), nil
}

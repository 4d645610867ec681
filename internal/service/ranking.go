package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"exusiai.dev/cardrank/internal/app/appconfig"
	"exusiai.dev/cardrank/internal/model"
	"exusiai.dev/cardrank/internal/model/cache"
	pkgcache "exusiai.dev/cardrank/internal/pkg/cache"
	"exusiai.dev/cardrank/internal/pkg/observability"
	"exusiai.dev/cardrank/internal/util/rankutil"
)

// RankingTTL is how long every computed ranking, weighted ranking and
// originality map is served before it is recomputed. Rankings may be up to a
// week stale.
const RankingTTL = 7 * 24 * time.Hour

type MatchFetcher interface {
	FetchAll(ctx context.Context, rng model.DateRange) ([]*model.Match, error)
}

type Ranking struct {
	Catalog  *Catalog
	Matches  MatchFetcher
	Caches   *cache.Registry
	TTL      time.Duration
	Location *time.Location

	clock func() time.Time
}

func NewRanking(catalog *Catalog, matches *MatchSource, caches *cache.Registry, conf *appconfig.Config) *Ranking {
	return &Ranking{
		Catalog:  catalog,
		Matches:  matches,
		Caches:   caches,
		TTL:      RankingTTL,
		Location: conf.TimeZone.Location,
		clock:    time.Now,
	}
}

// RankingKey identifies a ranking by counting policy, day-truncated range and
// catalog content.
func RankingKey(deduplicate bool, rng model.DateRange, loc *time.Location, catalog *model.Catalog) string {
	return strconv.FormatBool(deduplicate) + "|" + rng.Key(loc) + "|" + catalog.Fingerprint()
}

// Cache: ranking#deduplicate|from|to|zone|catalog, RankingTTL
func (s *Ranking) GetRanking(ctx context.Context, query model.RankingQuery) (*pkgcache.Entry[*model.RankingResult], error) {
	catalog, err := s.Catalog.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	rng := query.Range.Truncate(s.Location)
	key := RankingKey(query.Deduplicate, rng, s.Location, catalog)

	return s.Caches.Rankings.MutexGetSet(ctx, key, func(ctx context.Context) (*model.RankingResult, error) {
		start := time.Now()
		matches, err := s.Matches.FetchAll(ctx, rng)
		if err != nil {
			return nil, err
		}

		result := rankutil.Rank(matches, catalog, query.Deduplicate, s.clock())

		observability.RankingComputeDuration.WithLabelValues("ranking").Observe(time.Since(start).Seconds())
		log.Info().
			Str("evt.name", "ranking.computed").
			Str("key", key).
			Int("matches", result.TotalMatches).
			Int("entries", len(result.Ranking)).
			Dur("dur", time.Since(start)).
			Msg("ranking computed")
		return result, nil
	}, s.TTL)
}

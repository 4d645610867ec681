package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zeebo/xxh3"

	"exusiai.dev/cardrank/internal/app/appconfig"
	"exusiai.dev/cardrank/internal/model"
	"exusiai.dev/cardrank/internal/model/cache"
	pkgcache "exusiai.dev/cardrank/internal/pkg/cache"
	"exusiai.dev/cardrank/internal/pkg/observability"
	"exusiai.dev/cardrank/internal/util/rankutil"
)

type Originality struct {
	Catalog  *Catalog
	Weighted *WeightedRanking
	Caches   *cache.Registry
	Tiers    []model.OriginalityTier
	TTL      time.Duration

	tiersKey string
	clock    func() time.Time
}

func NewOriginality(catalog *Catalog, weighted *WeightedRanking, caches *cache.Registry, conf *appconfig.Config) *Originality {
	return &Originality{
		Catalog:  catalog,
		Weighted: weighted,
		Caches:   caches,
		Tiers:    conf.OriginalityTiers,
		TTL:      RankingTTL,
		tiersKey: TiersKey(conf.OriginalityTiers),
		clock:    time.Now,
	}
}

// TiersKey fingerprints a tier table so that a changed table never reads
// maps scored with the old one.
func TiersKey(tiers []model.OriginalityTier) string {
	parts := make([]string, 0, len(tiers))
	for _, t := range tiers {
		end := ""
		if t.EndRank.Valid {
			end = strconv.FormatInt(t.EndRank.Int64, 10)
		}
		parts = append(parts, t.Label+":"+strconv.Itoa(t.Points)+":"+strconv.Itoa(t.StartRank)+"-"+end)
	}
	return strconv.FormatUint(xxh3.HashString(strings.Join(parts, ",")), 16)
}

// GetOriginalityRanking is the weighted ranking the scores are derived from.
func (s *Originality) GetOriginalityRanking(ctx context.Context, deduplicate bool) (*pkgcache.Entry[*model.RankingResult], error) {
	return s.Weighted.GetWeightedRanking(ctx, deduplicate)
}

// Cache: originalityMap#deduplicate|week|zone|catalog|tiers, RankingTTL
func (s *Originality) GetOriginalityMap(ctx context.Context, deduplicate bool) (*pkgcache.Entry[*model.OriginalityMapResult], error) {
	catalog, err := s.Catalog.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	weeks := s.Weighted.Weeks()
	key := s.Weighted.WeekKey(deduplicate, weeks[0], catalog) + "|" + s.tiersKey

	return s.Caches.OriginalityMaps.MutexGetSet(ctx, key, func(ctx context.Context) (*model.OriginalityMapResult, error) {
		start := time.Now()
		weighted, err := s.Weighted.getForWeeks(ctx, deduplicate, weeks, catalog)
		if err != nil {
			return nil, err
		}

		result := &model.OriginalityMapResult{
			Points:      rankutil.ScoreOriginality(weighted.Value.Ranking, s.Tiers, catalog),
			GeneratedAt: s.clock(),
		}

		observability.RankingComputeDuration.WithLabelValues("originality").Observe(time.Since(start).Seconds())
		log.Info().
			Str("evt.name", "originality.computed").
			Str("key", key).
			Int("cards", len(result.Points)).
			Dur("dur", time.Since(start)).
			Msg("originality map computed")
		return result, nil
	}, s.TTL)
}

func (s *Originality) GetTiers() []model.OriginalityTier {
	return s.Tiers
}

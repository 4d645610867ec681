package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"exusiai.dev/cardrank/internal/model"
	"exusiai.dev/cardrank/internal/model/cache"
)

// PurgeAll is the cache name that flushes every cache.
const PurgeAll = "*"

type Admin struct {
	Caches      *cache.Registry
	Rankings    *Ranking
	Originality *Originality
}

func NewAdmin(caches *cache.Registry, rankings *Ranking, originality *Originality) *Admin {
	return &Admin{
		Caches:      caches,
		Rankings:    rankings,
		Originality: originality,
	}
}

func (s *Admin) PurgeCache(name string) error {
	log.Info().
		Str("evt.name", "admin.purge").
		Str("cache", name).
		Msg("purging cache")

	if name == PurgeAll {
		return s.Caches.DeleteAll()
	}
	return s.Caches.Delete(name)
}

func (s *Admin) CacheNames() []string {
	return s.Caches.Names()
}

// Refresh drops the catalog and every weighted result, then recomputes the
// current ones for both counting policies. Weekly rankings stay cached since
// completed weeks do not change.
func (s *Admin) Refresh(ctx context.Context) error {
	for _, name := range []string{
		"catalog",
		s.Caches.WeightedRankings.Name(),
		s.Caches.OriginalityMaps.Name(),
	} {
		if err := s.Caches.Delete(name); err != nil {
			return errors.Wrapf(err, "failed to purge %s", name)
		}
	}

	for _, deduplicate := range []bool{false, true} {
		if err := s.Warm(ctx, deduplicate); err != nil {
			return err
		}
	}
	return nil
}

// Warm computes, or touches, the results clients ask for most: the all-time
// ranking and the current originality map with its weighted ranking.
func (s *Admin) Warm(ctx context.Context, deduplicate bool) error {
	if _, err := s.Rankings.GetRanking(ctx, model.RankingQuery{Deduplicate: deduplicate}); err != nil {
		return errors.Wrap(err, "failed to warm ranking")
	}
	if _, err := s.Originality.GetOriginalityMap(ctx, deduplicate); err != nil {
		return errors.Wrap(err, "failed to warm originality map")
	}
	return nil
}

package cache

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"exusiai.dev/cardrank/internal/model"
	"exusiai.dev/cardrank/internal/pkg/cache"
)

type Flusher func() error

var ErrUnknownCache = errors.New("unknown cache name")

// Registry owns every cache set of the service. Set names double as the key
// layout description and as the name accepted by the admin purge endpoint.
type Registry struct {
	Catalog *cache.Singular[*model.Catalog]

	Rankings         *cache.Set[*model.RankingResult]
	WeightedRankings *cache.Set[*model.RankingResult]
	OriginalityMaps  *cache.Set[*model.OriginalityMapResult]

	SetMap             map[string]Flusher
	SingularFlusherMap map[string]Flusher
}

// New builds the registry over store. locker may be nil.
func New(store cache.Store, locker cache.Locker) *Registry {
	var opts []cache.Option
	if locker != nil {
		opts = append(opts, cache.WithLocker(locker))
	}

	r := &Registry{
		SetMap:             make(map[string]Flusher),
		SingularFlusherMap: make(map[string]Flusher),
	}

	// catalog
	r.Catalog = cache.NewSingular[*model.Catalog]("catalog")
	r.SingularFlusherMap["catalog"] = r.Catalog.Delete

	// ranking
	r.Rankings = cache.NewSet[*model.RankingResult](store, "ranking#deduplicate|from|to|catalog", opts...)
	r.SetMap[r.Rankings.Name()] = r.Rankings.Flush

	// weighted ranking
	r.WeightedRankings = cache.NewSet[*model.RankingResult](store, "weightedRanking#deduplicate|week|catalog", opts...)
	r.SetMap[r.WeightedRankings.Name()] = r.WeightedRankings.Flush

	// originality
	r.OriginalityMaps = cache.NewSet[*model.OriginalityMapResult](store, "originalityMap#deduplicate|week|catalog|tiers", opts...)
	r.SetMap[r.OriginalityMaps.Name()] = r.OriginalityMaps.Flush

	return r
}

// Delete flushes the set or singular registered under name.
func (r *Registry) Delete(name string) error {
	if f, ok := r.SingularFlusherMap[name]; ok {
		return f()
	}
	if f, ok := r.SetMap[name]; ok {
		return f()
	}
	return errors.Wrapf(ErrUnknownCache, "%q", name)
}

// DeleteAll flushes everything and reports the first failure.
func (r *Registry) DeleteAll() error {
	var first error
	for _, name := range r.Names() {
		if err := r.Delete(name); err != nil {
			log.Error().Err(err).Str("cache", name).Msg("failed to flush cache")
			if first == nil {
				first = err
			}
		}
	}
	return first
}

func (r *Registry) Names() []string {
	names := append(lo.Keys(r.SingularFlusherMap), lo.Keys(r.SetMap)...)
	sort.Strings(names)
	return names
}

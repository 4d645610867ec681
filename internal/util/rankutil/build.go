package rankutil

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"exusiai.dev/cardrank/internal/model"
)

// BuildRanking ranks buckets by use count, descending. Equal counts keep their
// input order and still get distinct ranks. Every catalog name that is not
// ranked yet is appended with a zero use count, ordered by Japanese collation.
func BuildRanking(buckets []*NameBucket, catalog *model.Catalog) []*model.RankingEntry {
	sorted := append([]*NameBucket(nil), buckets...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UseCount > sorted[j].UseCount
	})

	entries := make([]*model.RankingEntry, 0, len(sorted)+catalog.Len())
	ranked := make(map[string]struct{}, len(sorted))
	for _, bucket := range sorted {
		ranked[bucket.Name] = struct{}{}
		entries = append(entries, bucket.entry(len(entries)+1))
	}

	for _, bucket := range zeroUsageBuckets(catalog, ranked) {
		entries = append(entries, bucket.entry(len(entries)+1))
	}

	return entries
}

func zeroUsageBuckets(catalog *model.Catalog, ranked map[string]struct{}) []*NameBucket {
	if catalog == nil {
		return nil
	}

	zero := make([]*NameBucket, 0)
	seen := make(map[string]struct{})
	for _, card := range catalog.Cards {
		if card.IsBanned() {
			continue
		}
		if _, ok := ranked[card.Name]; ok {
			continue
		}
		if _, ok := seen[card.Name]; ok {
			continue
		}
		seen[card.Name] = struct{}{}
		zero = append(zero, bucketFromCard(card, 0))
	}

	SortByName(zero)
	return zero
}

// SortByName orders buckets by name using Japanese collation rather than byte
// order. The sort is stable.
func SortByName(buckets []*NameBucket) {
	// a collator keeps internal buffers and must not be shared across goroutines
	c := collate.New(language.Japanese)
	sort.SliceStable(buckets, func(i, j int) bool {
		return c.CompareString(buckets[i].Name, buckets[j].Name) < 0
	})
}

// Rank runs the single window pipeline over an already fetched match set.
func Rank(matches []*model.Match, catalog *model.Catalog, deduplicate bool, generatedAt time.Time) *model.RankingResult {
	usage := CountUsage(matches, deduplicate)
	return &model.RankingResult{
		Ranking:      BuildRanking(MergeByName(usage, catalog), catalog),
		TotalMatches: len(matches),
		GeneratedAt:  generatedAt,
	}
}

package rankutil

import (
	"time"

	"exusiai.dev/cardrank/internal/model"
)

// WeekWeights are the multipliers of the latest, previous and oldest week.
var WeekWeights = []int{3, 2, 1}

type WeightedRanking struct {
	Ranking *model.RankingResult
	Weight  int
}

// ComposeWeighted sums Weight*UseCount by name over the given rankings and
// re-ranks the result. Names are merged in the order the rankings are given,
// which makes the tie-break order reproducible. A catalog name is zero-usage
// only when no ranking used it.
func ComposeWeighted(weeks []WeightedRanking, catalog *model.Catalog, generatedAt time.Time) *model.RankingResult {
	buckets := make([]*NameBucket, 0)
	byName := make(map[string]*NameBucket)
	totalMatches := 0

	for _, week := range weeks {
		if week.Ranking == nil {
			continue
		}
		totalMatches += week.Ranking.TotalMatches
		for _, e := range week.Ranking.Ranking {
			if e.UseCount == 0 {
				continue
			}
			weighted := e.UseCount * week.Weight
			if bucket, ok := byName[e.Name]; ok {
				bucket.UseCount += weighted
				continue
			}
			bucket := bucketFromEntry(e, weighted)
			byName[e.Name] = bucket
			buckets = append(buckets, bucket)
		}
	}

	return &model.RankingResult{
		Ranking:      BuildRanking(buckets, catalog),
		TotalMatches: totalMatches,
		GeneratedAt:  generatedAt,
	}
}

package model

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

// OriginalityTier awards Points to every rank in [StartRank, EndRank]. An
// invalid EndRank means the tier is open ended.
type OriginalityTier struct {
	Label     string   `json:"label"`
	Points    int      `json:"points"`
	StartRank int      `json:"startRank"`
	EndRank   null.Int `json:"endRank" swaggertype:"integer"`
}

func (t OriginalityTier) Contains(rank int) bool {
	if rank < t.StartRank {
		return false
	}
	return !t.EndRank.Valid || int64(rank) <= t.EndRank.Int64
}

// OriginalityMap holds the originality points of every catalog id.
type OriginalityMap map[string]int

type OriginalityMapResult struct {
	Points      OriginalityMap `json:"points"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

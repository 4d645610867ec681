package model

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

type RankingEntry struct {
	Rank     int      `json:"rank"`
	CardID   string   `json:"cardId"`
	Name     string   `json:"name"`
	UseCount int      `json:"useCount"`
	Rarity   string   `json:"rarity"`
	Type     string   `json:"type"`
	Cost     null.Int `json:"cost" swaggertype:"integer"`
	Color    string   `json:"color"`
}

type RankingResult struct {
	Ranking      []*RankingEntry `json:"ranking"`
	TotalMatches int             `json:"totalMatches"`
	GeneratedAt  time.Time       `json:"generatedAt"`
}

// RankingQuery carries every input that changes a plain ranking.
type RankingQuery struct {
	Deduplicate bool
	Range       DateRange
}

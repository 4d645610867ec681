package rankutil

import (
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/cardrank/internal/model"
)

// NameBucket is the usage of one card name, summed over every print of it.
// The metadata is taken from the first card id seen for the name.
type NameBucket struct {
	Name     string
	CardID   string
	UseCount int
	Rarity   string
	Type     string
	Cost     null.Int
	Color    string
}

func bucketFromCard(card *model.Card, useCount int) *NameBucket {
	return &NameBucket{
		Name:     card.Name,
		CardID:   card.CardID,
		UseCount: useCount,
		Rarity:   card.Rarity,
		Type:     card.Type,
		Cost:     card.Cost,
		Color:    card.Color,
	}
}

func bucketFromEntry(e *model.RankingEntry, useCount int) *NameBucket {
	return &NameBucket{
		Name:     e.Name,
		CardID:   e.CardID,
		UseCount: useCount,
		Rarity:   e.Rarity,
		Type:     e.Type,
		Cost:     e.Cost,
		Color:    e.Color,
	}
}

func (b *NameBucket) entry(rank int) *model.RankingEntry {
	return &model.RankingEntry{
		Rank:     rank,
		CardID:   b.CardID,
		Name:     b.Name,
		UseCount: b.UseCount,
		Rarity:   b.Rarity,
		Type:     b.Type,
		Cost:     b.Cost,
		Color:    b.Color,
	}
}

// MergeByName folds per-id counts into per-name buckets, in first-encounter
// order. Ids missing from the catalog keep their id as name; banned species
// are dropped.
func MergeByName(usage *UsageCount, catalog *model.Catalog) []*NameBucket {
	buckets := make([]*NameBucket, 0, usage.Len())
	byName := make(map[string]*NameBucket, usage.Len())

	for _, cardID := range usage.IDs() {
		if catalog.IsBanned(cardID) {
			continue
		}
		count := usage.Get(cardID)
		name := catalog.NameOf(cardID)
		if bucket, ok := byName[name]; ok {
			bucket.UseCount += count
			continue
		}

		var bucket *NameBucket
		if card, ok := catalog.Get(cardID); ok {
			bucket = bucketFromCard(card, count)
		} else {
			bucket = &NameBucket{Name: name, CardID: cardID, UseCount: count}
		}
		byName[name] = bucket
		buckets = append(buckets, bucket)
	}

	return buckets
}

package repo

import (
	"context"

	"github.com/uptrace/bun"

	"exusiai.dev/cardrank/internal/model"
	"exusiai.dev/cardrank/internal/repo/selector"
)

type Card struct {
	sel selector.S[model.Card]
}

func NewCard(db *bun.DB) *Card {
	return &Card{sel: selector.New[model.Card](db)}
}

// GetCards returns the whole catalog ordered by card id, which is the
// traversal order the ranking relies on for first-seen metadata.
func (r *Card) GetCards(ctx context.Context) ([]*model.Card, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("card_id ASC")
	})
}

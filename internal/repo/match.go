package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"exusiai.dev/cardrank/internal/model"
	"exusiai.dev/cardrank/internal/pkg/pgerr"
	"exusiai.dev/cardrank/internal/repo/selector"
)

type Match struct {
	sel selector.S[model.Match]
}

func NewMatch(db *bun.DB) *Match {
	return &Match{sel: selector.New[model.Match](db)}
}

// GetMatchPage returns up to limit matches starting at offset, in match id
// order, restricted to matches started within rng. Matches without a start
// time only show up when rng is unbounded.
func (r *Match) GetMatchPage(ctx context.Context, rng model.DateRange, offset, limit int) ([]*model.Match, error) {
	matches, err := r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Order("match_id ASC").Offset(offset).Limit(limit)
		return applyDateRange(q, rng)
	})
	if errors.Is(err, pgerr.ErrNotFound) {
		return []*model.Match{}, nil
	}
	return matches, err
}

func applyDateRange(q *bun.SelectQuery, rng model.DateRange) *bun.SelectQuery {
	if rng.From.Valid {
		q = q.Where("started_at >= ?", rng.From.Time)
	}
	if rng.To.Valid {
		q = q.Where("started_at < ?", rng.To.Time)
	}
	return q
}

package types

import (
	"time"

	"gopkg.in/guregu/null.v3"

	"exusiai.dev/cardrank/internal/model"
)

type RankingRequest struct {
	Deduplicate bool   `query:"deduplicate"`
	From        string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To          string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// Query converts the request into a ranking query with dates at midnight in
// loc. Call it only on a validated request.
func (r *RankingRequest) Query(loc *time.Location) model.RankingQuery {
	return model.RankingQuery{
		Deduplicate: r.Deduplicate,
		Range: model.DateRange{
			From: parseDay(r.From, loc),
			To:   parseDay(r.To, loc),
		},
	}
}

// RangeOrdered reports whether from does not come after to. ISO dates order
// lexically.
func (r *RankingRequest) RangeOrdered() bool {
	return r.From == "" || r.To == "" || r.From <= r.To
}

type PolicyRequest struct {
	Deduplicate bool `query:"deduplicate"`
}

func parseDay(s string, loc *time.Location) null.Time {
	if s == "" {
		return null.Time{}
	}
	t, err := time.ParseInLocation(model.DateLayout, s, loc)
	if err != nil {
		return null.Time{}
	}
	return null.TimeFrom(t)
}

package model

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

const DateLayout = "2006-01-02"

// DateRange is a half-open [From, To) filter on match start time. Either end
// may be left open.
type DateRange struct {
	From null.Time `json:"from" swaggertype:"string"`
	To   null.Time `json:"to" swaggertype:"string"`
}

func NewDateRange(from, to time.Time) DateRange {
	return DateRange{
		From: null.TimeFrom(from),
		To:   null.TimeFrom(to),
	}
}

func (r DateRange) IsBounded() bool {
	return r.From.Valid || r.To.Valid
}

// Truncate floors both ends to the start of their day in loc.
func (r DateRange) Truncate(loc *time.Location) DateRange {
	return DateRange{
		From: truncateDay(r.From, loc),
		To:   truncateDay(r.To, loc),
	}
}

// Key renders the range at day precision in loc, so that two requests made
// milliseconds apart share a cache entry. The zone is part of the key since
// the same day strings name different instants in different zones.
func (r DateRange) Key(loc *time.Location) string {
	return dayKey(r.From, loc) + "|" + dayKey(r.To, loc) + "|" + loc.String()
}

func (r DateRange) Includes(t time.Time) bool {
	if r.From.Valid && t.Before(r.From.Time) {
		return false
	}
	if r.To.Valid && !t.Before(r.To.Time) {
		return false
	}
	return true
}

func truncateDay(t null.Time, loc *time.Location) null.Time {
	if !t.Valid {
		return t
	}
	lt := t.Time.In(loc)
	return null.TimeFrom(time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc))
}

func dayKey(t null.Time, loc *time.Location) string {
	if !t.Valid {
		return "*"
	}
	return t.Time.In(loc).Format(DateLayout)
}

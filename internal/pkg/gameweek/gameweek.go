// Package gameweek computes the trailing weekly windows of the weighted
// ranking. A week ends on the anchor weekday and starts the day after it, so a
// Sunday anchor gives Monday to Sunday weeks.
package gameweek

import (
	"time"
)

const Day = time.Hour * 24

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// PreviousAnchor returns midnight of the last anchor weekday strictly before
// the day of t. On an anchor day itself it goes back a full week.
func PreviousAnchor(t time.Time, anchor time.Weekday, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	back := (int(day.Weekday()) - int(anchor) + 7) % 7
	if back == 0 {
		back = 7
	}
	return day.AddDate(0, 0, -back)
}

// LatestWeek is the most recently completed week: the one ending with
// PreviousAnchor(t).
func LatestWeek(t time.Time, anchor time.Weekday, loc *time.Location) Window {
	last := PreviousAnchor(t, anchor, loc)
	return Window{
		Start: last.AddDate(0, 0, -6),
		End:   last.AddDate(0, 0, 1),
	}
}

// Windows returns n consecutive non-overlapping weeks, latest first.
func Windows(t time.Time, anchor time.Weekday, loc *time.Location, n int) []Window {
	latest := LatestWeek(t, anchor, loc)
	windows := make([]Window, 0, n)
	for i := 0; i < n; i++ {
		windows = append(windows, Window{
			Start: latest.Start.AddDate(0, 0, -7*i),
			End:   latest.End.AddDate(0, 0, -7*i),
		})
	}
	return windows
}

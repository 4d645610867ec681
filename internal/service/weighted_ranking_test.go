package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/cardrank/internal/model"
	"exusiai.dev/cardrank/internal/pkg/cache"
	"exusiai.dev/cardrank/internal/pkg/gameweek"
)

// testNow is Thursday 2026-10-15, so the weeks are
// [10-05, 10-12), [09-28, 10-05) and [09-21, 09-28).
func weightedFixture() *fixture {
	cards := []*model.Card{
		testCard("A-1", "A"),
		testCard("B-1", "B"),
		testCard("C-1", "C"),
		testCard("D-1", "D"),
		testCard("E-1", "E"),
	}
	matches := []*model.Match{
		// week 1
		testMatch("w1-1", day(2026, 10, 5), []any{"A-1", "A-1"}, []any{"B-1"}),
		testMatch("w1-2", day(2026, 10, 11), []any{"A-1"}, nil),
		// week 2
		testMatch("w2-1", day(2026, 9, 28), []any{"B-1", "B-1", "C-1"}, nil),
		// week 3
		testMatch("w3-1", day(2026, 9, 21), []any{"C-1", "C-1", "C-1"}, []any{"D-1"}),
		testMatch("w3-2", day(2026, 9, 27), []any{"A-1"}, nil),
		// outside every week
		testMatch("current", day(2026, 10, 13), []any{"E-1", "E-1", "E-1", "E-1"}, nil),
		testMatch("old", day(2026, 9, 20), []any{"E-1"}, nil),
	}
	return newFixture(cards, matches)
}

func TestWeeks(t *testing.T) {
	f := weightedFixture()
	weeks := f.weighted.Weeks()
	require.Len(t, weeks, 3)
	assert.True(t, time.Date(2026, 10, 5, 0, 0, 0, 0, tokyo).Equal(weeks[0].Start))
	assert.True(t, time.Date(2026, 10, 12, 0, 0, 0, 0, tokyo).Equal(weeks[0].End))
	assert.True(t, time.Date(2026, 9, 21, 0, 0, 0, 0, tokyo).Equal(weeks[2].Start))
}

func TestGetWeightedRanking(t *testing.T) {
	f := weightedFixture()

	entry, err := f.weighted.GetWeightedRanking(context.Background(), false)
	require.NoError(t, err)

	result := entry.Value
	counts := useCountsByName(result)
	assert.Equal(t, 3*3+2*0+1*1, counts["A"])
	assert.Equal(t, 3*1+2*2+1*0, counts["B"])
	assert.Equal(t, 3*0+2*1+1*3, counts["C"])
	assert.Equal(t, 1, counts["D"])
	assert.Equal(t, 0, counts["E"], "matches outside the weeks do not count")
	assert.Equal(t, 5, result.TotalMatches)

	names := make([]string, 0, len(result.Ranking))
	for i, e := range result.Ranking {
		assert.Equal(t, i+1, e.Rank)
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, names)
}

func TestGetWeightedRankingCachesWeeks(t *testing.T) {
	f := weightedFixture()
	ctx := context.Background()

	_, err := f.weighted.GetWeightedRanking(ctx, true)
	require.NoError(t, err)
	calls := f.pager.callCount()
	assert.Equal(t, 2+1+2, calls, "weeks one and three fill a page and need a second one")

	for _, w := range f.weighted.Weeks() {
		_, err := f.ranking.GetRanking(ctx, model.RankingQuery{Deduplicate: true, Range: model.NewDateRange(w.Start, w.End)})
		require.NoError(t, err)
	}
	_, err = f.weighted.GetWeightedRanking(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, calls, f.pager.callCount())
}

func TestGetWeightedRankingFailsAsAWhole(t *testing.T) {
	f := weightedFixture()
	ctx := context.Background()
	week2 := f.weighted.Weeks()[1]
	f.pager.setFail(func(call pageCall, attempt int) bool {
		return call.Range.From.Valid && call.Range.From.Time.Equal(week2.Start)
	})

	_, err := f.weighted.GetWeightedRanking(ctx, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMatchSourceUnavailable))

	catalog, err := f.catalog.GetCatalog(ctx)
	require.NoError(t, err)
	_, err = f.caches.WeightedRankings.Get(ctx, f.weighted.WeekKey(false, f.weighted.Weeks()[0], catalog))
	assert.ErrorIs(t, err, cache.ErrNotFound, "no partial composite is cached")

	f.pager.setFail(nil)
	entry, err := f.weighted.GetWeightedRanking(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 5, entry.Value.TotalMatches)
}

func TestGetOriginalityMap(t *testing.T) {
	f := weightedFixture()
	f.cards.cards = append(f.cards.cards, testCard("A-2", "A"), testCard("V-1", "Virus", "ウィルス"))

	entry, err := f.originality.GetOriginalityMap(context.Background(), false)
	require.NoError(t, err)

	points := entry.Value.Points
	assert.Len(t, points, 7, "every catalog id is scored")
	// fewer than 100 ranked names: everything ranked is a staple
	assert.Equal(t, 0, points["A-1"])
	assert.Equal(t, 0, points["A-2"])
	assert.Equal(t, 0, points["E-1"], "zero usage names are still ranked")
	assert.Equal(t, 8, points["V-1"], "banned cards are never ranked")
	assert.True(t, testNow.Equal(entry.Value.GeneratedAt))

	ranking, err := f.originality.GetOriginalityRanking(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 5, ranking.Value.TotalMatches)
}

func TestTiersKey(t *testing.T) {
	a := []model.OriginalityTier{{Label: "x", Points: 0, StartRank: 1}}
	b := []model.OriginalityTier{{Label: "x", Points: 1, StartRank: 1}}
	assert.NotEqual(t, TiersKey(a), TiersKey(b))
	assert.Equal(t, TiersKey(a), TiersKey([]model.OriginalityTier{{Label: "x", Points: 0, StartRank: 1}}))
}

func TestGetOriginalityMapAcrossWeekBoundary(t *testing.T) {
	f := weightedFixture()
	ctx := context.Background()

	// the first reading is Thursday, every later one is the next Monday
	var mu sync.Mutex
	readings := 0
	f.weighted.clock = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		readings++
		if readings == 1 {
			return testNow
		}
		return testNow.AddDate(0, 0, 4)
	}

	_, err := f.originality.GetOriginalityMap(ctx, false)
	require.NoError(t, err)

	nextWeek := time.Date(2026, 10, 12, 0, 0, 0, 0, tokyo)
	f.pager.mu.Lock()
	for _, c := range f.pager.calls {
		assert.False(t, c.Range.From.Valid && c.Range.From.Time.Equal(nextWeek), "fetched %s", c.Range.Key(tokyo))
	}
	f.pager.mu.Unlock()

	catalog, err := f.catalog.GetCatalog(ctx)
	require.NoError(t, err)
	latest := gameweek.Windows(testNow, time.Sunday, tokyo, 3)[0]
	weighted, err := f.caches.WeightedRankings.Get(ctx, f.weighted.WeekKey(false, latest, catalog))
	require.NoError(t, err)
	assert.Equal(t, 5, weighted.Value.TotalMatches)
}

func TestCacheKeysCarryZone(t *testing.T) {
	f := weightedFixture()
	catalog, err := f.catalog.GetCatalog(context.Background())
	require.NoError(t, err)

	// noon UTC falls on the same calendar day in Tokyo
	from := time.Date(2026, 10, 6, 12, 0, 0, 0, time.UTC)
	rng := model.NewDateRange(from, from.AddDate(0, 0, 1))
	assert.Equal(t, rng.Truncate(tokyo).From.Time.Format(model.DateLayout), rng.Truncate(time.UTC).From.Time.Format(model.DateLayout))
	assert.NotEqual(t, RankingKey(false, rng, tokyo, catalog), RankingKey(false, rng, time.UTC, catalog))
	assert.NotEqual(t, RankingKey(false, model.DateRange{}, tokyo, catalog), RankingKey(false, model.DateRange{}, time.UTC, catalog))

	week := gameweek.Window{Start: time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC), End: time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)}
	utc := *f.weighted
	utc.Location = time.UTC
	assert.NotEqual(t, f.weighted.WeekKey(false, week, catalog), utc.WeekKey(false, week, catalog))
}

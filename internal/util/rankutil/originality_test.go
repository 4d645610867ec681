package rankutil

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/cardrank/internal/model"
)

func TestDefaultTiers(t *testing.T) {
	require.NoError(t, ValidateTiers(DefaultTiers))
	require.Len(t, DefaultTiers, 5)
	assert.Equal(t, model.OriginalityTier{Label: "original", Points: 8, StartRank: 401}, DefaultTiers[4])
	assert.Equal(t, 8, HighestTierPoints(DefaultTiers))
}

func TestTierForRank(t *testing.T) {
	cases := []struct {
		rank   int
		points int
	}{
		{1, 0},
		{100, 0},
		{101, 1},
		{150, 1},
		{200, 1},
		{201, 2},
		{300, 2},
		{301, 4},
		{400, 4},
		{401, 8},
		{450, 8},
		{100000, 8},
	}
	for _, tc := range cases {
		tier, ok := TierForRank(DefaultTiers, tc.rank)
		assert.True(t, ok, "rank %d", tc.rank)
		assert.Equal(t, tc.points, tier.Points, "rank %d", tc.rank)
	}

	_, ok := TierForRank(DefaultTiers, 0)
	assert.False(t, ok)
}

func TestTierCoverage(t *testing.T) {
	for rank := 1; rank <= 10000; rank++ {
		matched := 0
		for _, tier := range DefaultTiers {
			if tier.Contains(rank) {
				matched++
			}
		}
		if matched != 1 {
			t.Fatalf("rank %d matched %d tiers", rank, matched)
		}
	}
}

func TestParseTiersRejectsBrokenTables(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"gap":            "a:0:1-10,b:1:12-",
		"overlap":        "a:0:1-10,b:1:10-",
		"not from one":   "a:0:2-10,b:1:11-",
		"closed last":    "a:0:1-10,b:1:11-20",
		"open middle":    "a:0:1-,b:1:11-",
		"bad points":     "a:x:1-",
		"bad shape":      "a:0",
		"inverted range": "a:0:5-1,b:1:2-",
	}
	for name, spec := range cases {
		_, err := ParseTiers(spec)
		assert.True(t, errors.Is(err, ErrInvalidTiers), "%s: %v", name, err)
	}
}

func TestParseTiers(t *testing.T) {
	tiers, err := ParseTiers(" low:0:1-5 , high:3:6- ")
	require.NoError(t, err)
	assert.Equal(t, []model.OriginalityTier{
		{Label: "low", Points: 0, StartRank: 1, EndRank: null.IntFrom(5)},
		{Label: "high", Points: 3, StartRank: 6},
	}, tiers)
}

func TestScoreOriginality(t *testing.T) {
	cards := []*model.Card{}
	for i := 1; i <= 460; i++ {
		cards = append(cards, card(fmt.Sprintf("ID-%03d", i), fmt.Sprintf("N-%03d", i)))
	}
	reprint := card("RE-150", "N-150")
	brandNew := card("NEW-1", "Brand New")
	virus := card("V-1", "Virus", "ウィルス")
	cards = append(cards, reprint, brandNew, virus)
	catalog := model.NewCatalog(cards)

	var entries []*model.RankingEntry
	for i := 1; i <= 450; i++ {
		entries = append(entries, &model.RankingEntry{Rank: i, Name: fmt.Sprintf("N-%03d", i), UseCount: 500 - i})
	}

	points := ScoreOriginality(entries, DefaultTiers, catalog)

	assert.Len(t, points, catalog.Len(), "every catalog id is scored")
	assert.Equal(t, 0, points["ID-100"])
	assert.Equal(t, 1, points["ID-150"])
	assert.Equal(t, 1, points["RE-150"], "reprints share the score of their name")
	assert.Equal(t, 8, points["ID-450"])
	assert.Equal(t, 8, points["ID-455"], "names missing from the ranking score the highest tier")
	assert.Equal(t, 8, points["NEW-1"])
	assert.Equal(t, 8, points["V-1"])
}

func TestScoreOriginalityWithoutMatches(t *testing.T) {
	catalog := model.NewCatalog([]*model.Card{card("A", "A"), card("B", "B")})
	points := ScoreOriginality(nil, DefaultTiers, catalog)
	assert.Equal(t, model.OriginalityMap{"A": 8, "B": 8}, points)
}

package rankutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/cardrank/internal/model"
)

var ErrInvalidTiers = errors.New("invalid originality tiers")

// DefaultTiersSpec is the shipped tier table: popular cards are worth nothing,
// rarely played and unplayed cards are worth the most.
const DefaultTiersSpec = "staple:0:1-100,common:1:101-200,uncommon:2:201-300,rare:4:301-400,original:8:401-"

var DefaultTiers = MustParseTiers(DefaultTiersSpec)

// ParseTiers reads a comma separated list of label:points:start-end tiers.
// The last tier leaves its end empty.
func ParseTiers(spec string) ([]model.OriginalityTier, error) {
	tiers := make([]model.OriginalityTier, 0)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ":")
		if len(fields) != 3 {
			return nil, errors.Wrapf(ErrInvalidTiers, "expect label:points:start-end, got %q", part)
		}
		points, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidTiers, "invalid points in %q", part)
		}
		bounds := strings.SplitN(fields[2], "-", 2)
		if len(bounds) != 2 {
			return nil, errors.Wrapf(ErrInvalidTiers, "invalid rank range in %q", part)
		}
		start, err := strconv.Atoi(bounds[0])
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidTiers, "invalid start rank in %q", part)
		}
		tier := model.OriginalityTier{
			Label:     fields[0],
			Points:    points,
			StartRank: start,
		}
		if bounds[1] != "" {
			end, err := strconv.Atoi(bounds[1])
			if err != nil {
				return nil, errors.Wrapf(ErrInvalidTiers, "invalid end rank in %q", part)
			}
			tier.EndRank = null.IntFrom(int64(end))
		}
		tiers = append(tiers, tier)
	}

	if err := ValidateTiers(tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}

func MustParseTiers(spec string) []model.OriginalityTier {
	tiers, err := ParseTiers(spec)
	if err != nil {
		panic(err)
	}
	return tiers
}

// ValidateTiers checks that tiers partition every rank >= 1: ascending,
// contiguous, with only the last tier open ended.
func ValidateTiers(tiers []model.OriginalityTier) error {
	if len(tiers) == 0 {
		return errors.Wrap(ErrInvalidTiers, "no tiers")
	}
	if tiers[0].StartRank != 1 {
		return errors.Wrapf(ErrInvalidTiers, "first tier starts at rank %d, want 1", tiers[0].StartRank)
	}
	for i, tier := range tiers {
		last := i == len(tiers)-1
		if last {
			if tier.EndRank.Valid {
				return errors.Wrapf(ErrInvalidTiers, "last tier %q must be open ended", tier.Label)
			}
			break
		}
		if !tier.EndRank.Valid {
			return errors.Wrapf(ErrInvalidTiers, "tier %q is open ended but not last", tier.Label)
		}
		if tier.EndRank.Int64 < int64(tier.StartRank) {
			return errors.Wrapf(ErrInvalidTiers, "tier %q ends before it starts", tier.Label)
		}
		if next := tiers[i+1]; int64(next.StartRank) != tier.EndRank.Int64+1 {
			return errors.Wrap(ErrInvalidTiers, fmt.Sprintf("tier %q starts at %d, want %d", next.Label, next.StartRank, tier.EndRank.Int64+1))
		}
	}
	return nil
}

// TierForRank returns the first tier containing rank.
func TierForRank(tiers []model.OriginalityTier, rank int) (model.OriginalityTier, bool) {
	for _, tier := range tiers {
		if tier.Contains(rank) {
			return tier, true
		}
	}
	return model.OriginalityTier{}, false
}

// HighestTierPoints is the score of a card the ranking never saw.
func HighestTierPoints(tiers []model.OriginalityTier) int {
	highest := 0
	for i, tier := range tiers {
		if i == 0 || tier.Points > highest {
			highest = tier.Points
		}
	}
	return highest
}

// ScoreOriginality maps every catalog id to the points of its name's rank.
// Names the ranking does not hold score HighestTierPoints.
func ScoreOriginality(entries []*model.RankingEntry, tiers []model.OriginalityTier, catalog *model.Catalog) model.OriginalityMap {
	nameToPoints := make(map[string]int, len(entries))
	for _, e := range entries {
		if _, ok := nameToPoints[e.Name]; ok {
			continue
		}
		if tier, ok := TierForRank(tiers, e.Rank); ok {
			nameToPoints[e.Name] = tier.Points
		}
	}

	fallback := HighestTierPoints(tiers)
	points := make(model.OriginalityMap, catalog.Len())
	if catalog == nil {
		return points
	}
	for _, card := range catalog.Cards {
		if p, ok := nameToPoints[card.Name]; ok {
			points[card.CardID] = p
		} else {
			points[card.CardID] = fallback
		}
	}
	return points
}

// Package rankutil holds the pure card ranking pipeline: usage counting, name
// merging, ranking, weighted composition and originality scoring. Nothing in
// here touches I/O or shared state; every call builds its own structures.
package rankutil

import (
	"strings"

	"exusiai.dev/cardrank/internal/model"
)

// UsageCount maps card ids to occurrence counts and remembers the order in
// which ids were first counted.
type UsageCount struct {
	ids    []string
	counts map[string]int
}

func NewUsageCount() *UsageCount {
	return &UsageCount{
		counts: make(map[string]int),
	}
}

func (u *UsageCount) Add(cardID string, n int) {
	if _, ok := u.counts[cardID]; !ok {
		u.ids = append(u.ids, cardID)
	}
	u.counts[cardID] += n
}

func (u *UsageCount) Get(cardID string) int {
	return u.counts[cardID]
}

// IDs returns counted ids in first-encounter order.
func (u *UsageCount) IDs() []string {
	return append([]string(nil), u.ids...)
}

func (u *UsageCount) Len() int {
	return len(u.ids)
}

func (u *UsageCount) Total() int {
	total := 0
	for _, n := range u.counts {
		total += n
	}
	return total
}

// CountUsage counts card ids over both decks of every match. With deduplicate
// set, an id counts at most once per deck (inclusion rate); otherwise every
// copy counts (raw volume). Entries that are not non-blank strings are skipped.
func CountUsage(matches []*model.Match, deduplicate bool) *UsageCount {
	usage := NewUsageCount()
	for _, match := range matches {
		if match == nil {
			continue
		}
		for _, deck := range match.Decks() {
			var seen map[string]struct{}
			if deduplicate {
				seen = make(map[string]struct{}, len(deck))
			}
			for _, entry := range deck {
				cardID, ok := entry.(string)
				if !ok || strings.TrimSpace(cardID) == "" {
					continue
				}
				if deduplicate {
					if _, dup := seen[cardID]; dup {
						continue
					}
					seen[cardID] = struct{}{}
				}
				usage.Add(cardID, 1)
			}
		}
	}
	return usage
}

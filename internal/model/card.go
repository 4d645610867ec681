package model

import (
	"sort"
	"strconv"
	"strings"

	"github.com/uptrace/bun"
	"github.com/zeebo/xxh3"
	"gopkg.in/guregu/null.v3"
)

// BannedSpecies marks helper cards that can never be put in a deck. Cards of
// this species are excluded from every ranking.
const BannedSpecies = "ウィルス"

type Card struct {
	bun.BaseModel `bun:"cards,alias:c"`

	CardID  string   `bun:",pk" json:"cardId"`
	Name    string   `json:"name"`
	Rarity  string   `json:"rarity"`
	Type    string   `json:"type"`
	Cost    null.Int `json:"cost" swaggertype:"integer"`
	Color   string   `json:"color"`
	Species []string `bun:",array" json:"species"`
}

func (c *Card) IsBanned() bool {
	for _, s := range c.Species {
		if s == BannedSpecies {
			return true
		}
	}
	return false
}

// Catalog is the read-only card lookup. Cards keeps the load order, which is
// the traversal order used wherever "first id seen" matters.
type Catalog struct {
	Cards []*Card

	byID        map[string]*Card
	fingerprint string
}

func NewCatalog(cards []*Card) *Catalog {
	c := &Catalog{
		Cards: cards,
		byID:  make(map[string]*Card, len(cards)),
	}
	for _, card := range cards {
		if _, ok := c.byID[card.CardID]; !ok {
			c.byID[card.CardID] = card
		}
	}
	c.fingerprint = fingerprint(cards)
	return c
}

func (c *Catalog) Get(cardID string) (*Card, bool) {
	if c == nil {
		return nil, false
	}
	card, ok := c.byID[cardID]
	return card, ok
}

// NameOf resolves the display name of a card id. Unknown ids are their own name.
func (c *Catalog) NameOf(cardID string) string {
	if card, ok := c.Get(cardID); ok {
		return card.Name
	}
	return cardID
}

func (c *Catalog) IsBanned(cardID string) bool {
	card, ok := c.Get(cardID)
	return ok && card.IsBanned()
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Cards)
}

// Fingerprint identifies the catalog content that affects rankings. It is part
// of every ranking cache key so a catalog update never serves stale names.
func (c *Catalog) Fingerprint() string {
	if c == nil {
		return fingerprint(nil)
	}
	return c.fingerprint
}

func fingerprint(cards []*Card) string {
	lines := make([]string, 0, len(cards))
	for _, card := range cards {
		species := append([]string(nil), card.Species...)
		sort.Strings(species)
		lines = append(lines, card.CardID+"\x1f"+card.Name+"\x1f"+strings.Join(species, "\x1e"))
	}
	sort.Strings(lines)

	return strconv.FormatUint(xxh3.HashString(strings.Join(lines, "\n")), 16)
}

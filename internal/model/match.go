package model

import (
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// Match is one finished game as persisted by the live game. Deck entries are
// kept untyped: rows written by older clients may hold nulls or numbers, which
// the usage aggregation skips.
type Match struct {
	bun.BaseModel `bun:"matches,alias:m"`

	MatchID     string    `bun:",pk" json:"matchId"`
	Player1Deck []any     `bun:"player1_deck,type:jsonb" json:"player1Deck"`
	Player2Deck []any     `bun:"player2_deck,type:jsonb" json:"player2Deck"`
	StartedAt   null.Time `json:"startedAt" swaggertype:"string"`
}

func (m *Match) Decks() [][]any {
	return [][]any{m.Player1Deck, m.Player2Deck}
}

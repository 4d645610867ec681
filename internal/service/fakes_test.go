package service

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/cardrank/internal/model"
	"exusiai.dev/cardrank/internal/model/cache"
	pkgcache "exusiai.dev/cardrank/internal/pkg/cache"
	"exusiai.dev/cardrank/internal/util/rankutil"
)

var (
	tokyo   = time.FixedZone("JST", 9*60*60)
	testNow = time.Date(2026, 10, 15, 10, 30, 0, 0, tokyo)

	errFlaky = errors.New("connection reset by peer")
)

type fakeCards struct {
	mu    sync.Mutex
	cards []*model.Card
	calls int
}

func (f *fakeCards) GetCards(ctx context.Context) ([]*model.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.cards, nil
}

type pageCall struct {
	Range  model.DateRange
	Offset int
	Limit  int
}

// fakePager serves matches the way repo.Match does: filtered by start time,
// ordered as given, sliced by offset and limit.
type fakePager struct {
	mu      sync.Mutex
	matches []*model.Match
	calls   []pageCall
	// fail decides whether a call fails; it is consulted before serving
	fail func(call pageCall, attempt int) bool
}

func (f *fakePager) GetMatchPage(ctx context.Context, rng model.DateRange, offset, limit int) ([]*model.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := pageCall{Range: rng, Offset: offset, Limit: limit}
	attempt := 0
	for _, c := range f.calls {
		if c == call {
			attempt++
		}
	}
	f.calls = append(f.calls, call)
	if f.fail != nil && f.fail(call, attempt) {
		return nil, errFlaky
	}

	filtered := make([]*model.Match, 0)
	for _, m := range f.matches {
		if rng.IsBounded() && (!m.StartedAt.Valid || !rng.Includes(m.StartedAt.Time)) {
			continue
		}
		filtered = append(filtered, m)
	}
	if offset >= len(filtered) {
		return []*model.Match{}, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (f *fakePager) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakePager) setFail(fail func(call pageCall, attempt int) bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}

type fixture struct {
	cards       *fakeCards
	pager       *fakePager
	caches      *cache.Registry
	catalog     *Catalog
	source      *MatchSource
	ranking     *Ranking
	weighted    *WeightedRanking
	originality *Originality
	admin       *Admin
}

func newFixture(cards []*model.Card, matches []*model.Match) *fixture {
	clock := func() time.Time { return testNow }

	f := &fixture{
		cards:  &fakeCards{cards: cards},
		pager:  &fakePager{matches: matches},
		caches: cache.New(pkgcache.NewMemoryStore(), nil),
	}
	f.catalog = &Catalog{Cards: f.cards, Caches: f.caches}
	f.source = &MatchSource{Pager: f.pager, PageSize: 2, Attempts: 3, RetryDelay: time.Millisecond}
	f.ranking = &Ranking{
		Catalog:  f.catalog,
		Matches:  f.source,
		Caches:   f.caches,
		TTL:      RankingTTL,
		Location: tokyo,
		clock:    clock,
	}
	f.weighted = &WeightedRanking{
		Catalog:   f.catalog,
		Rankings:  f.ranking,
		Caches:    f.caches,
		TTL:       RankingTTL,
		AnchorDay: time.Sunday,
		Location:  tokyo,
		clock:     clock,
	}
	f.originality = &Originality{
		Catalog:  f.catalog,
		Weighted: f.weighted,
		Caches:   f.caches,
		Tiers:    rankutil.DefaultTiers,
		TTL:      RankingTTL,
		tiersKey: TiersKey(rankutil.DefaultTiers),
		clock:    clock,
	}
	f.admin = NewAdmin(f.caches, f.ranking, f.originality)
	return f
}

func testCard(id, name string, species ...string) *model.Card {
	return &model.Card{CardID: id, Name: name, Rarity: "R", Type: "デジモン", Cost: null.IntFrom(4), Color: "青", Species: species}
}

func testMatch(id string, startedAt time.Time, p1, p2 []any) *model.Match {
	return &model.Match{MatchID: id, Player1Deck: p1, Player2Deck: p2, StartedAt: null.TimeFrom(startedAt)}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, tokyo)
}

func useCountsByName(result *model.RankingResult) map[string]int {
	m := make(map[string]int, len(result.Ranking))
	for _, e := range result.Ranking {
		m[e.Name] = e.UseCount
	}
	return m
}

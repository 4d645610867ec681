package service

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"exusiai.dev/cardrank/internal/app/appconfig"
	"exusiai.dev/cardrank/internal/model"
	"exusiai.dev/cardrank/internal/pkg/observability"
)

// ErrMatchSourceUnavailable means the match set could not be fetched
// completely. No partial match set is ever returned with it.
var ErrMatchSourceUnavailable = errors.New("match source unavailable")

type MatchPager interface {
	GetMatchPage(ctx context.Context, rng model.DateRange, offset, limit int) ([]*model.Match, error)
}

type MatchSource struct {
	Pager      MatchPager
	PageSize   int
	Attempts   uint
	RetryDelay time.Duration
}

func NewMatchSource(pager MatchPager, conf *appconfig.Config) *MatchSource {
	return &MatchSource{
		Pager:      pager,
		PageSize:   conf.MatchPageSize,
		Attempts:   conf.MatchFetchAttempts,
		RetryDelay: conf.MatchFetchRetryDelay,
	}
}

// FetchAll pages through every match in rng. Pages are requested one after
// another since a short page is the only end marker. A page that keeps
// failing after all attempts aborts the whole fetch.
func (s *MatchSource) FetchAll(ctx context.Context, rng model.DateRange) ([]*model.Match, error) {
	start := time.Now()
	matches := make([]*model.Match, 0, s.PageSize)

	for offset := 0; ; offset += s.PageSize {
		page, err := s.fetchPage(ctx, rng, offset)
		if err != nil {
			observability.MatchFetchDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
			log.Error().
				Err(err).
				Str("evt.name", "match_source.fetch_failed").
				Interface("range", rng).
				Int("offset", offset).
				Msg("giving up match fetch")
			return nil, errors.Wrapf(ErrMatchSourceUnavailable, "page at offset %d: %v", offset, err)
		}

		matches = append(matches, page...)
		if len(page) < s.PageSize {
			break
		}
	}

	observability.MatchFetchDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	if l := log.Trace(); l.Enabled() {
		l.Str("evt.name", "match_source.fetched").
			Int("matches", len(matches)).
			Dur("dur", time.Since(start)).
			Msg("fetched matches")
	}
	return matches, nil
}

func (s *MatchSource) fetchPage(ctx context.Context, rng model.DateRange, offset int) ([]*model.Match, error) {
	var page []*model.Match
	err := retry.Do(
		func() error {
			var err error
			page, err = s.Pager.GetMatchPage(ctx, rng, offset, s.PageSize)
			if err != nil {
				observability.MatchFetchPages.WithLabelValues("error").Inc()
				return err
			}
			observability.MatchFetchPages.WithLabelValues("ok").Inc()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.Attempts),
		retry.Delay(s.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().
				Err(err).
				Str("evt.name", "match_source.page_retry").
				Int("offset", offset).
				Uint("attempt", n+1).
				Msg("match page failed. retrying...")
		}),
	)
	return page, err
}

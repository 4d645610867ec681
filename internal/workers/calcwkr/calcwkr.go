package calcwkr

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"exusiai.dev/cardrank/internal/app/appconfig"
	"exusiai.dev/cardrank/internal/app/appcontext"
	"exusiai.dev/cardrank/internal/model"
	"exusiai.dev/cardrank/internal/pkg/cache"
	"exusiai.dev/cardrank/internal/service"
)

type RankingService interface {
	GetRanking(ctx context.Context, query model.RankingQuery) (*cache.Entry[*model.RankingResult], error)
}

type WeightedRankingService interface {
	GetWeightedRanking(ctx context.Context, deduplicate bool) (*cache.Entry[*model.RankingResult], error)
}

type OriginalityService interface {
	GetOriginalityMap(ctx context.Context, deduplicate bool) (*cache.Entry[*model.OriginalityMapResult], error)
}

type WorkerDeps struct {
	fx.In

	RankingService     *service.Ranking
	WeightedService    *service.WeightedRanking
	OriginalityService *service.Originality
}

type job struct {
	service string
	run     func(ctx context.Context, deduplicate bool) error
}

type Worker struct {
	// count counts batches worker has completed so far
	count int

	// sep describes the separation time in-between different jobs
	sep time.Duration

	// interval describes the interval in-between different batches of job running
	interval time.Duration

	// timeout bounds a single job
	timeout time.Duration

	jobs []job
}

func New(conf *appconfig.Config, rankings RankingService, weighted WeightedRankingService, originality OriginalityService) *Worker {
	return &Worker{
		sep:      conf.WorkerSeparation,
		interval: conf.WorkerInterval,
		timeout:  conf.WorkerTimeout,
		jobs: []job{
			{"ranking", func(ctx context.Context, deduplicate bool) error {
				_, err := rankings.GetRanking(ctx, model.RankingQuery{Deduplicate: deduplicate})
				return err
			}},
			{"weightedRanking", func(ctx context.Context, deduplicate bool) error {
				_, err := weighted.GetWeightedRanking(ctx, deduplicate)
				return err
			}},
			{"originalityMap", func(ctx context.Context, deduplicate bool) error {
				_, err := originality.GetOriginalityMap(ctx, deduplicate)
				return err
			}},
		},
	}
}

func Start(conf *appconfig.Config, lc fx.Lifecycle, deps WorkerDeps) {
	if !conf.WorkerEnabled || conf.AppContext.Env == appcontext.EnvCLI {
		log.Info().
			Str("evt.name", "worker.disabled").
			Msg("cache warming worker is disabled")
		return
	}

	w := New(conf, deps.RankingService, deps.WeightedService, deps.OriginalityService)

	var cancel context.CancelFunc
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			cancel = w.do()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func (w *Worker) do() context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for {
			w.batch(ctx)

			select {
			case <-ctx.Done():
				return
			case <-time.After(w.interval):
			}
		}
	}()

	return cancel
}

// batch warms every job for both counting policies. A failing job is logged
// and skipped; the next one still runs.
func (w *Worker) batch(ctx context.Context) {
	log.Info().
		Int("count", w.count).
		Msg("worker batch started")

	for _, j := range w.jobs {
		for _, deduplicate := range []bool{false, true} {
			if ctx.Err() != nil {
				return
			}

			l := log.With().
				Str("service", j.service).
				Bool("deduplicate", deduplicate).
				Logger()

			l.Info().Msg("worker calculating")
			err := observeCalcDuration(j.service, strconv.FormatBool(deduplicate), func() error {
				jobCtx, cancel := context.WithTimeout(ctx, w.timeout)
				defer cancel()
				return j.run(jobCtx, deduplicate)
			})
			if err != nil {
				l.Error().Err(err).Msg("worker calculation failed")
			} else {
				l.Debug().Msg("worker finished")
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(w.sep):
			}
		}
	}

	log.Info().Int("count", w.count).Msg("worker batch finished")

	w.count++
}

func (w *Worker) Count() int {
	return w.count
}

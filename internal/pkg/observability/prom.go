package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "cardrank"
)

var (
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "cache", "requests_total"),
		Help: "Cache lookups by set and result (hit, miss, shared, error)",
	}, []string{"set", "result"})
	MatchFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "match_source", "fetch_duration_seconds"),
		Help:    "Duration of a complete paginated match fetch in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	}, []string{"result"})
	MatchFetchPages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "match_source", "pages_total"),
		Help: "Match pages requested from the match store",
	}, []string{"result"})
	RankingComputeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "ranking", "compute_duration_seconds"),
		Help:    "Duration of ranking computations in seconds, excluding cache hits",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	}, []string{"kind"})
	WorkerCalcDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "worker", "calc_duration_seconds"),
		Help: "Duration of last worker calculation in seconds",
	}, []string{"service", "deduplicate"})
)

package appconfig

import (
	"time"

	"exusiai.dev/cardrank/internal/app/appcontext"
)

const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9010"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// provide a more contextual message when encountered a panic. See internal/server/httpserver/http.go for the
	// actual implementation details.
	DevMode bool `split_words:"true"`

	// infrastructure components connection instructions

	// PostgresDSN is the data source name for the PostgreSQL database holding the cards and matches tables. See
	// https://bun.uptrace.dev/postgres/#pgdriver for more details on how to construct a PostgreSQL DSN.
	PostgresDSN string `required:"true" split_words:"true"`

	PostgresMaxOpenConns    int           `split_words:"true" default:"10"`
	PostgresMaxIdleConns    int           `split_words:"true" default:"2"`
	PostgresConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	PostgresConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// RedisURL is the URL of the Redis server. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL
	// for more information on how to construct a Redis URL. Only used when CacheBackend is redis.
	RedisURL string `required:"true" split_words:"true" default:"redis://127.0.0.1:6379/1"`

	// CacheBackend selects where computed rankings are kept: "redis" shares them between instances,
	// "memory" keeps them in process.
	CacheBackend string `required:"true" split_words:"true" default:"redis"`

	// CacheLockExpiry is the expiry of the cross-instance lock held while a cache entry is computed.
	CacheLockExpiry time.Duration `split_words:"true" default:"2m"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// WorkerInterval describes the interval in-between different cache warming batches
	WorkerInterval time.Duration `required:"true" split_words:"true" default:"6h"`

	// WorkerSeparation describes the separation time in-between different microtasks
	WorkerSeparation time.Duration `required:"true" split_words:"true" default:"3s"`

	// WorkerTimeout describes the timeout for a single microtask to run
	WorkerTimeout time.Duration `required:"true" split_words:"true" default:"10m"`

	// WorkerEnabled is a flag to indicate whether to enable the cache warming worker.
	WorkerEnabled bool `split_words:"true"`

	// AdminKey is the key used to authenticate the admin API. Leaving this empty disables the admin API.
	AdminKey string `split_words:"true"`

	// RangeLimitMax is how many rankings over a custom date range a single client IP may request per
	// RangeLimitWindow. Zero disables the limit.
	RangeLimitMax    int           `split_words:"true" default:"30"`
	RangeLimitWindow time.Duration `split_words:"true" default:"1m"`

	// MatchPageSize is the number of match rows requested per page from the match store.
	MatchPageSize int `required:"true" split_words:"true" default:"1000"`

	// MatchFetchAttempts is how many times a single page is tried before the whole fetch is given up.
	MatchFetchAttempts uint `required:"true" split_words:"true" default:"3"`

	// MatchFetchRetryDelay is the base delay in-between page attempts.
	MatchFetchRetryDelay time.Duration `split_words:"true" default:"500ms"`

	// WeekAnchorDay is the weekday the weighted ranking weeks are anchored on. The latest week is the
	// one containing the last such day strictly before now.
	WeekAnchorDay Weekday `required:"true" split_words:"true" default:"sunday"`

	// TimeZone is the IANA zone used for day truncation and week windows.
	TimeZone Location `required:"true" split_words:"true" default:"Asia/Tokyo"`

	// OriginalityTiers is the rank to points table in label:points:start-end form, comma separated,
	// with the last tier left open ended, e.g. "staple:0:1-100,original:8:101-".
	OriginalityTiers TierTable `required:"true" split_words:"true" default:"staple:0:1-100,common:1:101-200,uncommon:2:201-300,rare:4:301-400,original:8:401-"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}

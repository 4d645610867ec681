package appconfig

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"exusiai.dev/cardrank/internal/app/appcontext"
	"exusiai.dev/cardrank/internal/pkg/projectpath"
)

const envPrefix = "cardrank"

func Parse(ctx appcontext.Ctx) (*Config, error) {
	err := godotenv.Load(filepath.Join(projectpath.Root, ".env"))
	if err != nil {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	var config ConfigSpec
	err = envconfig.Process(envPrefix, &config)
	if err != nil {
		_ = envconfig.Usage(envPrefix, &config)
		return nil, fmt.Errorf("failed to parse configuration: %w. More info on how to configure this service is located at https://pkg.go.dev/exusiai.dev/cardrank/internal/app/appconfig#ConfigSpec", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return &Config{
		ConfigSpec: config,
		AppContext: ctx,
	}, nil
}

func (c *ConfigSpec) validate() error {
	switch c.CacheBackend {
	case CacheBackendRedis, CacheBackendMemory:
	default:
		return fmt.Errorf("invalid cache backend %q: expect %q or %q", c.CacheBackend, CacheBackendRedis, CacheBackendMemory)
	}
	if c.MatchPageSize <= 0 {
		return fmt.Errorf("invalid match page size %d", c.MatchPageSize)
	}
	if c.MatchFetchAttempts == 0 {
		return fmt.Errorf("match fetch attempts must be at least 1")
	}
	return nil
}

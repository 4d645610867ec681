package infra

import (
	"context"

	"go.uber.org/fx"

	"exusiai.dev/cardrank/internal/app/appconfig"
	"exusiai.dev/cardrank/internal/pkg/cache"
)

// CacheBackend selects the store behind every cache set. The locker is nil
// for the in-process backend, where single flight alone is enough.
func CacheBackend(conf *appconfig.Config, lc fx.Lifecycle) (cache.Store, cache.Locker, error) {
	if conf.CacheBackend == appconfig.CacheBackendMemory {
		return cache.NewMemoryStore(), nil, nil
	}

	client, err := Redis(conf)
	if err != nil {
		return nil, nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return cache.NewRedisStore(client), cache.NewRedsyncLocker(RedSync(client), conf.CacheLockExpiry), nil
}

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// Singular is a single in-process value, such as the card catalog.
func NewSingular[T any](key string) *Singular[T] {
	return &Singular[T]{
		key: key,
		c:   cache.New(cache.NoExpiration, time.Minute*10),
	}
}

type Singular[T any] struct {
	// m is a mutex for MutexGetSet for concurrent prevention
	m sync.Mutex

	key string

	c *cache.Cache
}

func (c *Singular[T]) Get() (T, error) {
	result, ok := c.c.Get(c.key)
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return result.(T), nil
}

func (c *Singular[T]) Set(value T, expire time.Duration) {
	if expire <= 0 {
		expire = cache.NoExpiration
	}
	c.c.Set(c.key, value, expire)
}

// MutexGetSet returns the stored value, or computes and stores it with
// valueFunc. Computations are serialized; a failed one stores nothing.
func (c *Singular[T]) MutexGetSet(ctx context.Context, valueFunc func(ctx context.Context) (T, error), expire time.Duration) (T, error) {
	if value, err := c.Get(); err == nil {
		return value, nil
	}
	// onwards, cache key does not exist

	return c.slowMutexGetSet(ctx, valueFunc, expire)
}

func (c *Singular[T]) slowMutexGetSet(ctx context.Context, valueFunc func(ctx context.Context) (T, error), expire time.Duration) (T, error) {
	c.m.Lock()
	defer c.m.Unlock()
	if value, err := c.Get(); err == nil {
		return value, nil
	}

	value, err := valueFunc(ctx)
	if err != nil {
		log.Error().Err(err).Str("key", c.key).Msg("failed to get value from valueFunc() in MutexGetSet")
		return value, err
	}

	c.Set(value, expire)
	return value, nil
}

func (c *Singular[T]) Delete() error {
	c.c.Flush()
	return nil
}

package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/singleflight"

	"exusiai.dev/cardrank/internal/pkg/observability"
)

// Entry is a cached value together with the time it was computed. Entries
// returned by a Set are shared between callers and must not be mutated.
type Entry[T any] struct {
	Key             string    `msgpack:"k"`
	Value           T         `msgpack:"v"`
	ComputedAt      time.Time `msgpack:"c"`
	RevalidateAfter time.Time `msgpack:"r"`
}

// MaxAge is the time left until the entry should be recomputed.
func (e *Entry[T]) MaxAge(now time.Time) time.Duration {
	if d := e.RevalidateAfter.Sub(now); d > 0 {
		return d
	}
	return 0
}

type Option func(*setOptions)

type setOptions struct {
	locker Locker
	now    func() time.Time
}

// WithLocker makes MutexGetSet hold a cross-process lock while computing.
func WithLocker(l Locker) Option {
	return func(o *setOptions) {
		o.locker = l
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *setOptions) {
		o.now = now
	}
}

// Set is a named family of keys sharing one value type, stored msgpack
// encoded under "name:" in a Store.
type Set[T any] struct {
	store  Store
	name   string
	prefix string
	locker Locker
	now    func() time.Time

	group singleflight.Group
}

func NewSet[T any](store Store, name string, opts ...Option) *Set[T] {
	o := &setOptions{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return &Set[T]{
		store:  store,
		name:   name,
		prefix: name + ":",
		locker: o.locker,
		now:    o.now,
	}
}

func (c *Set[T]) Name() string {
	return c.name
}

func (c *Set[T]) key(key string) string {
	return c.prefix + key
}

func (c *Set[T]) Get(ctx context.Context, key string) (*Entry[T], error) {
	key = c.key(key)
	b, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var entry Entry[T]
	if err := msgpack.Unmarshal(b, &entry); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal value from msgpack")
		return nil, err
	}
	return &entry, nil
}

func (c *Set[T]) newEntry(key string, value T, expire time.Duration) *Entry[T] {
	now := c.now()
	return &Entry[T]{
		Key:             key,
		Value:           value,
		ComputedAt:      now,
		RevalidateAfter: now.Add(expire),
	}
}

func (c *Set[T]) Set(ctx context.Context, key string, value T, expire time.Duration) (*Entry[T], error) {
	entry := c.newEntry(key, value, expire)
	key = c.key(key)
	if l := log.Trace(); l.Enabled() {
		l.Str("key", key).Msg("setting value to cache")
	}
	b, err := msgpack.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to marshal value with msgpack")
		return nil, err
	}
	if err := c.store.Set(ctx, key, b, expire); err != nil {
		return nil, err
	}
	return entry, nil
}

// MutexGetSet returns the cached entry for key, or computes it with valueFunc.
// Concurrent callers of the same key share one computation, which keeps
// running when the caller that started it goes away. An error from valueFunc
// is returned to every waiter and nothing is stored.
func (c *Set[T]) MutexGetSet(ctx context.Context, key string, valueFunc func(ctx context.Context) (T, error), expire time.Duration) (*Entry[T], error) {
	entry, err := c.Get(ctx, key)
	if err == nil {
		c.observe("hit")
		return entry, nil
	} else if !errors.Is(err, ErrNotFound) {
		log.Warn().Err(err).Str("key", c.key(key)).Msg("cache unreadable, recomputing")
	}
	// onwards, cache key does not exist

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return c.slowMutexGetSet(detached, key, valueFunc, expire)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			c.observe("error")
			return nil, res.Err
		}
		if res.Shared {
			c.observe("shared")
		} else {
			c.observe("miss")
		}
		return res.Val.(*Entry[T]), nil
	}
}

func (c *Set[T]) slowMutexGetSet(ctx context.Context, key string, valueFunc func(ctx context.Context) (T, error), expire time.Duration) (*Entry[T], error) {
	if c.locker != nil {
		unlock, err := c.locker.Lock(ctx, c.key(key))
		if err != nil {
			log.Warn().Err(err).Str("key", c.key(key)).Msg("computing without cross-process lock")
		} else {
			defer unlock()
		}

		// another process may have filled the key while we were waiting
		if entry, err := c.Get(ctx, key); err == nil {
			return entry, nil
		}
	}

	value, err := valueFunc(ctx)
	if err != nil {
		log.Error().Err(err).Str("key", c.key(key)).Msg("failed to get value from valueFunc() in MutexGetSet")
		return nil, err
	}

	entry, err := c.Set(ctx, key, value, expire)
	if err != nil {
		log.Warn().Err(err).Str("key", c.key(key)).Msg("failed to store computed value, serving uncached")
		return c.newEntry(key, value, expire), nil
	}
	return entry, nil
}

func (c *Set[T]) Delete(ctx context.Context, key string) error {
	return c.store.Delete(ctx, c.key(key))
}

// Flush drops every key of the set.
func (c *Set[T]) Flush() error {
	return c.store.Flush(context.Background(), c.prefix)
}

func (c *Set[T]) observe(result string) {
	observability.CacheRequests.WithLabelValues(c.name, result).Inc()
}

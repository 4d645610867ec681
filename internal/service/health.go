package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	pkgcache "exusiai.dev/cardrank/internal/pkg/cache"
)

var (
	ErrDatabaseNotReachable = errors.New("database not reachable")
	ErrCacheNotReachable    = errors.New("cache not reachable")
)

type pinger interface {
	Ping(ctx context.Context) error
}

type Health struct {
	DB    *bun.DB
	Cache pkgcache.Store
}

func NewHealth(db *bun.DB, store pkgcache.Store) *Health {
	return &Health{
		DB:    db,
		Cache: store,
	}
}

func (s *Health) Ping(ctx context.Context) error {
	if err := s.DB.PingContext(ctx); err != nil {
		return errors.Wrap(ErrDatabaseNotReachable, err.Error())
	}

	if p, ok := s.Cache.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return errors.Wrap(ErrCacheNotReachable, err.Error())
		}
	}

	return nil
}

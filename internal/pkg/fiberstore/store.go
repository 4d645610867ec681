package fiberstore

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"exusiai.dev/cardrank/internal/pkg/cache"
)

// Store exposes a namespace of a cache.Store as fiber.Storage, so fiber
// middlewares share state through whichever cache backend is configured.
type Store struct {
	Backend cache.Store
	Prefix  string
}

var _ fiber.Storage = (*Store)(nil)

func New(backend cache.Store, prefix string) *Store {
	return &Store{
		Backend: backend,
		Prefix:  prefix + ":",
	}
}

// Get implements fiber.Storage. A missing key is nil without error.
func (s *Store) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	b, err := s.Backend.Get(context.Background(), s.Prefix+key)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, nil
	}
	return b, err
}

// Set implements fiber.Storage. Empty keys and values are ignored.
func (s *Store) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	return s.Backend.Set(context.Background(), s.Prefix+key, val, exp)
}

// Delete implements fiber.Storage
func (s *Store) Delete(key string) error {
	if key == "" {
		return nil
	}
	return s.Backend.Delete(context.Background(), s.Prefix+key)
}

// Reset implements fiber.Storage
func (s *Store) Reset() error {
	return s.Backend.Flush(context.Background(), s.Prefix)
}

// Close implements fiber.Storage. The backend outlives the middleware.
func (s *Store) Close() error {
	return nil
}

package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("cache: key not found")

// Store is a byte level key value backend. Get returns ErrNotFound on a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expire time.Duration) error
	Delete(ctx context.Context, key string) error
	// Flush removes every key starting with prefix.
	Flush(ctx context.Context, prefix string) error
}

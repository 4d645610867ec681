package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps encoded values in process. Values are stored as bytes so
// callers never share a decoded value with each other.
type MemoryStore struct {
	c *gocache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		c: gocache.New(gocache.NoExpiration, time.Minute*10),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return v.([]byte), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, expire time.Duration) error {
	if expire <= 0 {
		expire = gocache.NoExpiration
	}
	s.c.Set(key, value, expire)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.c.Delete(key)
	return nil
}

func (s *MemoryStore) Flush(_ context.Context, prefix string) error {
	for key := range s.c.Items() {
		if strings.HasPrefix(key, prefix) {
			s.c.Delete(key)
		}
	}
	return nil
}

package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var clearScript = redis.NewScript(`local keys = redis.call('keys', ARGV[1])
	for i=1,#keys,5000 do
		redis.call('del', unpack(keys, i, math.min(i+4999, #keys)))
	end
return keys`)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Str("key", key).Msg("failed to get value from redis")
		return nil, err
	}
	return resp, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, expire time.Duration) error {
	if err := s.client.Set(ctx, key, value, expire).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set value to redis")
		return err
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete value from redis")
		return err
	}
	return nil
}

func (s *RedisStore) Flush(ctx context.Context, prefix string) error {
	if err := clearScript.Eval(ctx, s.client, []string{}, []string{prefix + "*"}).Err(); err != nil && !errors.Is(err, redis.Nil) {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to clear cache")
		return err
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

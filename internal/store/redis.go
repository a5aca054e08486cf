package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/ratewindow/internal/ratelimit"
)

// RedisStore is a Redis implementation of ratelimit.Store. Window records
// are plain string values; Redis handles expiry through the TTL set on
// every write.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed record store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, err
	}

	return payload, nil
}

func (r *RedisStore) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, payload, ttl).Err()
}

// Compile-time check.
var _ ratelimit.Store = (*RedisStore)(nil)

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounterStore is the shared CounterStore for multi-instance
// deployments. Uses INCR with a TTL set on the first increment of a window,
// so all instances see the same fixed-window count.
type RedisCounterStore struct {
	client *redis.Client
}

// NewRedisCounterStore creates a counter store backed by the given Redis URL
func NewRedisCounterStore(redisURL string) (*RedisCounterStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &RedisCounterStore{
		client: redis.NewClient(opts),
	}, nil
}

// Incr atomically increments the window counter for a key
func (s *RedisCounterStore) Incr(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	redisKey := "ratelimit:" + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit expiry: %w", err)
		}
	}

	return count <= int64(limit), nil
}

// Ping verifies the Redis connection at startup
func (s *RedisCounterStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the Redis connection
func (s *RedisCounterStore) Close() error {
	return s.client.Close()
}

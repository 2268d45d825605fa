// Package ratestore provides the shared counter/set store backing the
// rate-limit and duplicate-phone checks.
package ratestore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements the rate-store contract on top of Redis. Counter
// keys use INCR with an expiry set on first increment; dedup keys use
// SET NX so the test-and-set is atomic under concurrent submissions.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store backed by the given client.
func NewRedisStore(client *redis.Client) *RedisStore {
	if client == nil {
		panic("ratestore: redis client required")
	}
	return &RedisStore{client: client}
}

// IncrementAndGet increments a windowed counter and returns the new value.
func (s *RedisStore) IncrementAndGet(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("ratestore: incr %s: %w", key, err)
	}

	// Set expiry only on first increment so the window is fixed, not sliding.
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return count, fmt.Errorf("ratestore: expire %s: %w", key, err)
		}
	}
	return count, nil
}

// Exists reports whether a dedup key is present.
func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("ratestore: exists %s: %w", key, err)
	}
	return n > 0, nil
}

// Insert records a dedup key with a TTL. Returns false when the key was
// already present (another submission won the race).
func (s *RedisStore) Insert(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	added, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("ratestore: setnx %s: %w", key, err)
	}
	return added, nil
}

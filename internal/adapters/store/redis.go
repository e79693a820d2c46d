package store

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore persists key-value state in Redis
type RedisStore struct {
	rdb       *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisStore connects to Redis. keyPrefix namespaces this service's
// keys inside a shared instance.
func NewRedisStore(addr, password string, db int, keyPrefix string, logger *zap.Logger) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	return &RedisStore{rdb: rdb, keyPrefix: keyPrefix, logger: logger}, nil
}

// Get retrieves a value
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.keyPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key from Redis: %w", err)
	}
	return v, true, nil
}

// Set stores a value without expiry; the ledger scopes keys by session
// and clears them on reset
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key in Redis: %w", err)
	}
	return nil
}

// Delete removes a key
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete key from Redis: %w", err)
	}
	return nil
}

// Keys lists keys matching a prefix
func (s *RedisStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	full, err := s.rdb.Keys(ctx, s.keyPrefix+prefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys from Redis: %w", err)
	}

	keys := make([]string, 0, len(full))
	for _, k := range full {
		keys = append(keys, k[len(s.keyPrefix):])
	}
	return keys, nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

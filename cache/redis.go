package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "transcache:"

// RedisStore is a Redis-backed Store shared by every worker that points at
// the same server.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	logger    log.Logger
}

// RedisConfig holds configuration for the Redis store.
type RedisConfig struct {
	URL       string // Redis connection URL (e.g., "redis://localhost:6379/0")
	KeyPrefix string // Prefix for all keys (default: "transcache:")
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig, logger log.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewRedisStoreFromClient(client, cfg.KeyPrefix, logger), nil
}

// NewRedisStoreFromClient creates a RedisStore from an existing Redis client.
func NewRedisStoreFromClient(client *redis.Client, keyPrefix string, logger log.Logger) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

// Fetch retrieves a value from Redis. Errors other than a missing key are
// logged and reported as a miss.
func (s *RedisStore) Fetch(ctx context.Context, key string) ([]byte, bool) {
	val, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		level.Warn(s.logger).Log("msg", "redis fetch failed", "key", key, "err", err)
		return nil, false
	}
	return val, true
}

// Add stores a value with SET NX so a live entry is never overwritten.
func (s *RedisStore) Add(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+key, string(value), ttl).Result()
	if err != nil {
		level.Warn(s.logger).Log("msg", "redis add failed", "key", key, "err", err)
		return false
	}
	return ok
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping tests the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Verify RedisStore implements Store
var _ Store = (*RedisStore)(nil)

// Package cache provides the shared key/value layer used by the translation
// adapters: an add-if-absent Store abstraction, its in-memory and Redis
// backends, and the Cache utility that applies expiry jitter on write.
package cache

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Store is a key/value backend with per-entry expiration.
// Implementations must be safe for concurrent use by many workers.
type Store interface {
	// Fetch returns the value stored under key. A missing or expired key
	// reports false.
	Fetch(ctx context.Context, key string) ([]byte, bool)

	// Add stores value under key only if key is not already present.
	// A zero ttl means the entry never expires. Reports whether the value
	// was actually stored.
	Add(ctx context.Context, key string, value []byte, ttl time.Duration) bool
}

// Cache wraps a Store and spreads expirations with Jitter.
type Cache struct {
	store  Store
	logger log.Logger
	jitter func(int) int
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithJitter replaces the expiry widening function. Mostly useful in tests
// that need deterministic TTLs.
func WithJitter(fn func(int) int) Option {
	return func(c *Cache) {
		c.jitter = fn
	}
}

// New creates a Cache on top of store.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		logger: log.NewNopLogger(),
		jitter: Jitter,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves the value stored under key.
func (c *Cache) Fetch(ctx context.Context, key string) ([]byte, bool) {
	return c.store.Fetch(ctx, key)
}

// Add stores value under key unless it is already present. expireSeconds is
// the nominal lifetime; the applied lifetime is widened by the jitter
// function. Zero means no expiration.
func (c *Cache) Add(ctx context.Context, key string, value []byte, expireSeconds int) bool {
	expire := c.jitter(expireSeconds)
	stored := c.store.Add(ctx, key, value, time.Duration(expire)*time.Second)
	if !stored {
		level.Debug(c.logger).Log("msg", "cache add skipped", "key", key)
	}
	return stored
}

// Store returns the underlying backend.
func (c *Cache) Store() Store {
	return c.store
}

package transcache

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/go-kit/log"
	"gopkg.in/yaml.v3"

	"github.com/wearerequired/transcache/cache"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	URL       string `yaml:"url"`
	KeyPrefix string `yaml:"key_prefix"`
}

// StoreConfig selects and configures the shared store.
type StoreConfig struct {
	Backend string      `yaml:"backend"`
	Redis   RedisConfig `yaml:"redis"`
}

// Config is the central configuration.
type Config struct {
	Store       StoreConfig   `yaml:"store"`
	DefaultTTL  time.Duration `yaml:"default_ttl"`
	NegativeTTL time.Duration `yaml:"negative_ttl"`
	SaltEnv     string        `yaml:"salt_env"`
	Locale      string        `yaml:"locale"` // empty: read from the environment
	LogLevel    string        `yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendMemory,
			Redis: RedisConfig{
				URL:       "redis://localhost:6379/0",
				KeyPrefix: "transcache:",
			},
		},
		DefaultTTL:  DefaultExpire,
		NegativeTTL: NegativeExpire,
		SaltEnv:     SaltEnv,
		LogLevel:    "info",
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromEnv applies environment variable overrides to the config.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("TRANSCACHE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("TRANSCACHE_REDIS_URL"); v != "" {
		cfg.Store.Redis.URL = v
	}
	if v := os.Getenv("TRANSCACHE_REDIS_PREFIX"); v != "" {
		cfg.Store.Redis.KeyPrefix = v
	}
	if v := os.Getenv("TRANSCACHE_LOCALE"); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv("TRANSCACHE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Validate checks the config for values the adapters cannot work with.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Store.Redis.URL == "" {
			return &ConfigError{Field: "store.redis.url", Message: "required for the redis backend"}
		}
	default:
		return &ConfigError{Field: "store.backend", Message: "unknown backend " + c.Store.Backend}
	}
	if c.DefaultTTL < time.Second {
		return &ConfigError{Field: "default_ttl", Message: "must be at least one second"}
	}
	if c.NegativeTTL < time.Second {
		return &ConfigError{Field: "negative_ttl", Message: "must be at least one second"}
	}
	if c.NegativeTTL > c.DefaultTTL {
		return &ConfigError{Field: "negative_ttl", Message: "must not exceed default_ttl"}
	}
	return nil
}

// Options returns the adapter options described by the config.
func (c *Config) Options() []Option {
	return []Option{
		WithTTLs(c.DefaultTTL, c.NegativeTTL),
		WithSalt(EnvSalt(c.SaltEnv)),
		WithLocale(c.LocaleFunc()),
	}
}

// LocaleFunc returns the locale source: the configured locale, or the
// environment when none is set.
func (c *Config) LocaleFunc() LocaleFunc {
	if c.Locale != "" {
		return FixedLocale(c.Locale)
	}
	return EnvLocale
}

// OpenStore connects the configured backend. The returned closer releases
// the backend's resources.
func (c *Config) OpenStore(ctx context.Context, logger log.Logger) (cache.Store, io.Closer, error) {
	switch c.Store.Backend {
	case BackendRedis:
		store, err := cache.NewRedisStore(ctx, cache.RedisConfig{
			URL:       c.Store.Redis.URL,
			KeyPrefix: c.Store.Redis.KeyPrefix,
		}, logger)
		if err != nil {
			return nil, nil, &CacheError{Message: "connecting to redis", Cause: err}
		}
		return store, store, nil
	case BackendMemory:
		return cache.NewInMemoryStore(), nopCloser{}, nil
	default:
		return nil, nil, &CacheError{Message: "unknown backend " + c.Store.Backend}
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

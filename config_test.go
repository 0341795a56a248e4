package transcache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wearerequired/transcache/cache"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, 6*time.Hour, cfg.DefaultTTL)
	assert.Equal(t, time.Hour, cfg.NegativeTTL)
	assert.Equal(t, SaltEnv, cfg.SaltEnv)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcache.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  backend: redis
  redis:
    url: redis://cache:6379/2
    key_prefix: "wp:l10n:"
default_ttl: 12h
negative_ttl: 30m
locale: de_DE
`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "redis://cache:6379/2", cfg.Store.Redis.URL)
	assert.Equal(t, "wp:l10n:", cfg.Store.Redis.KeyPrefix)
	assert.Equal(t, 12*time.Hour, cfg.DefaultTTL)
	assert.Equal(t, 30*time.Minute, cfg.NegativeTTL)
	assert.Equal(t, "de_DE", cfg.Locale)
	// untouched fields keep their defaults
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, SaltEnv, cfg.SaltEnv)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TRANSCACHE_BACKEND", "redis")
	t.Setenv("TRANSCACHE_REDIS_URL", "redis://env:6379/0")
	t.Setenv("TRANSCACHE_REDIS_PREFIX", "env:")
	t.Setenv("TRANSCACHE_LOCALE", "fr_FR")
	t.Setenv("TRANSCACHE_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	LoadFromEnv(cfg)

	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "redis://env:6379/0", cfg.Store.Redis.URL)
	assert.Equal(t, "env:", cfg.Store.Redis.KeyPrefix)
	assert.Equal(t, "fr_FR", cfg.Locale)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "unknown backend", mutate: func(c *Config) { c.Store.Backend = "apcu" }, field: "store.backend"},
		{name: "redis without url", mutate: func(c *Config) { c.Store.Backend = BackendRedis; c.Store.Redis.URL = "" }, field: "store.redis.url"},
		{name: "zero default ttl", mutate: func(c *Config) { c.DefaultTTL = 0 }, field: "default_ttl"},
		{name: "sub-second negative ttl", mutate: func(c *Config) { c.NegativeTTL = time.Millisecond }, field: "negative_ttl"},
		{name: "negative longer than default", mutate: func(c *Config) { c.NegativeTTL = 7 * time.Hour }, field: "negative_ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			var cfgErr *ConfigError
			require.ErrorAs(t, cfg.Validate(), &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestConfig_Options(t *testing.T) {
	t.Setenv("MY_SALT", "s1")
	cfg := DefaultConfig()
	cfg.SaltEnv = "MY_SALT"
	cfg.Locale = "de-DE"
	cfg.DefaultTTL = 2 * time.Hour
	cfg.NegativeTTL = 10 * time.Minute

	s := newSettings(cfg.Options())

	assert.Equal(t, "s1", s.salt())
	assert.Equal(t, "de_DE", s.locale())
	assert.Equal(t, 2*time.Hour, s.defaultTTL)
	assert.Equal(t, 10*time.Minute, s.negativeTTL)
}

func TestConfig_LocaleFunc(t *testing.T) {
	t.Setenv("LC_ALL", "fr_FR.UTF-8")

	cfg := DefaultConfig()
	cfg.Locale = ""
	assert.Equal(t, "fr_FR", cfg.LocaleFunc()())

	cfg.Locale = "de-DE"
	assert.Equal(t, "de_DE", cfg.LocaleFunc()())
}

func TestConfig_OpenStore(t *testing.T) {
	cfg := DefaultConfig()
	store, closer, err := cfg.OpenStore(context.Background(), log.NewNopLogger())
	require.NoError(t, err)
	assert.IsType(t, &cache.InMemoryStore{}, store)
	assert.NoError(t, closer.Close())

	cfg.Store.Redis.URL = "not a url"
	cfg.Store.Backend = BackendRedis
	_, _, err = cfg.OpenStore(context.Background(), log.NewNopLogger())
	var cacheErr *CacheError
	require.True(t, errors.As(err, &cacheErr))
	assert.Equal(t, "connecting to redis", cacheErr.Message)
}

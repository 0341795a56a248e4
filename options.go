package transcache

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/wearerequired/transcache/cache"
)

// Default lifetimes of cached results.
const (
	DefaultExpire  = 6 * time.Hour
	NegativeExpire = time.Hour
)

// settings is shared by both adapters.
type settings struct {
	logger       log.Logger
	metrics      *Metrics
	salt         func() string
	locale       LocaleFunc
	defaultTTL   time.Duration
	negativeTTL  time.Duration
	mofileFilter func(mofile, domain string) string
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:      log.NewNopLogger(),
		salt:        EnvSalt(SaltEnv),
		locale:      EnvLocale,
		defaultTTL:  DefaultExpire,
		negativeTTL: NegativeExpire,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures an adapter.
type Option func(*settings)

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithMetrics enables Prometheus counters.
func WithMetrics(m *Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

// WithSalt sets the salt source. It is called once per lookup.
func WithSalt(salt func() string) Option {
	return func(s *settings) {
		s.salt = salt
	}
}

// WithLocale sets the function resolving the current locale.
func WithLocale(locale LocaleFunc) Option {
	return func(s *settings) {
		s.locale = locale
	}
}

// WithTTLs sets the nominal lifetimes of positive and negative results.
// Non-positive values keep the defaults. Sub-second precision is rounded up
// to the next whole second.
func WithTTLs(positive, negative time.Duration) Option {
	return func(s *settings) {
		if positive > 0 {
			s.defaultTTL = positive
		}
		if negative > 0 {
			s.negativeTTL = negative
		}
	}
}

// WithMofileFilter lets the host rewrite the .mo path before it is read.
// The filter runs only on a cache miss; the cache key always uses the
// original path.
func WithMofileFilter(fn func(mofile, domain string) string) Option {
	return func(s *settings) {
		s.mofileFilter = fn
	}
}

// seconds converts a lifetime to whole seconds, rounding up so a positive
// lifetime never becomes zero.
func seconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// populate adds value under key and records the outcome. A lost race or a
// backend failure leaves the existing entry in place and is not an error.
func (s *settings) populate(ctx context.Context, c *cache.Cache, operation string, logger log.Logger, key string, value []byte, ttl time.Duration) {
	stored := c.Add(ctx, key, value, seconds(ttl))
	s.metrics.store(operation, stored)
	level.Debug(logger).Log("msg", "populated cache", "stored", stored, "ttl", ttl)
}

package transcache

import (
	"context"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/wearerequired/transcache/cache"
)

// ScriptPayload is the outcome of loading script translations. Found is
// false for the negative result "no translations for this handle".
type ScriptPayload struct {
	JSON  string
	Found bool
}

// ScriptFound wraps a JSON translation payload.
func ScriptFound(json string) *ScriptPayload {
	return &ScriptPayload{JSON: json, Found: true}
}

// ScriptNotFound returns the negative result.
func ScriptNotFound() *ScriptPayload {
	return &ScriptPayload{}
}

// ScriptTranslations caches the JSON translations of registered scripts.
type ScriptTranslations struct {
	cache  *cache.Cache
	loader ScriptLoader
	settings
}

// NewScriptTranslations creates the script translation adapter.
func NewScriptTranslations(c *cache.Cache, loader ScriptLoader, opts ...Option) *ScriptTranslations {
	return &ScriptTranslations{
		cache:    c,
		loader:   loader,
		settings: newSettings(opts),
	}
}

// Filter returns the translations of handle in domain read from file.
// A non-nil pre means another extension already resolved the payload and
// it is returned unchanged. Otherwise the cached payload is returned, or
// the file is loaded and the result cached. An empty file means "no file".
func (s *ScriptTranslations) Filter(ctx context.Context, pre *ScriptPayload, file, handle, domain string) *ScriptPayload {
	if pre != nil {
		return pre
	}

	locale := s.locale()
	key := BuildKey(OpScriptTranslations, s.salt(), locale, file, handle, domain)
	logger := log.With(s.logger, "op", OpScriptTranslations, "key", key)

	if cached, ok := s.cache.Fetch(ctx, key); ok {
		if isNegative(cached) {
			s.metrics.lookup(OpScriptTranslations, resultNegative)
			return ScriptNotFound()
		}
		payload, err := decodeScript(cached)
		if err == nil {
			s.metrics.lookup(OpScriptTranslations, resultHit)
			return ScriptFound(payload)
		}
		level.Warn(logger).Log("msg", "discarding undecodable cache entry", "err", err)
	}
	s.metrics.lookup(OpScriptTranslations, resultMiss)

	payload, found := s.loader.LoadScriptTranslations(ctx, file, handle, domain)
	if !found {
		s.populate(ctx, s.cache, OpScriptTranslations, logger, key, negativeMarker, s.negativeTTL)
		return ScriptNotFound()
	}

	s.populate(ctx, s.cache, OpScriptTranslations, logger, key, encodeScript(payload), s.defaultTTL)
	return ScriptFound(payload)
}

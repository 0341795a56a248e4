package transcache

import (
	"context"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/wearerequired/transcache/cache"
)

// Textdomain caches parsed gettext catalogs and installs them into the
// translation registry on behalf of the host.
type Textdomain struct {
	cache   *cache.Cache
	parser  CatalogParser
	domains DomainRegistry
	l10n    TranslationRegistry
	settings
}

// NewTextdomain creates the textdomain adapter.
func NewTextdomain(c *cache.Cache, parser CatalogParser, domains DomainRegistry, l10n TranslationRegistry, opts ...Option) *Textdomain {
	return &Textdomain{
		cache:    c,
		parser:   parser,
		domains:  domains,
		l10n:     l10n,
		settings: newSettings(opts),
	}
}

// Filter loads the catalog of domain from mofile. If override is already
// true another extension took over loading and it is returned unchanged.
// Otherwise Filter always reports true, even when there was nothing to
// load, so the host never reads the file itself. An empty locale means the
// current locale.
func (t *Textdomain) Filter(ctx context.Context, override bool, domain, mofile, locale string) bool {
	if override {
		return override
	}

	if locale == "" {
		locale = t.locale()
	}
	key := BuildKey(OpTextdomain, t.salt(), locale, domain, mofile)
	logger := log.With(t.logger, "op", OpTextdomain, "domain", domain, "locale", locale)

	if cached, ok := t.cache.Fetch(ctx, key); ok {
		if isNegative(cached) {
			t.metrics.lookup(OpTextdomain, resultNegative)
			return true
		}
		catalog, err := decodeCatalog(cached)
		if err == nil {
			t.metrics.lookup(OpTextdomain, resultHit)
			t.l10n.Merge(domain, catalog)
			return true
		}
		level.Warn(logger).Log("msg", "discarding undecodable cache entry", "key", key, "err", err)
	}
	t.metrics.lookup(OpTextdomain, resultMiss)

	if t.mofileFilter != nil {
		mofile = t.mofileFilter(mofile, domain)
	}

	if !t.parser.Readable(mofile) {
		level.Debug(logger).Log("msg", "catalog not readable", "mofile", mofile)
		t.domains.Set(domain, locale, "")
		t.populate(ctx, t.cache, OpTextdomain, logger, key, negativeMarker, t.negativeTTL)
		return true
	}

	catalog, err := t.parser.ParseFile(mofile)
	if err != nil {
		level.Warn(logger).Log("msg", "failed to parse catalog", "mofile", mofile, "err", err)
		t.metrics.parseFailure(OpTextdomain)
		t.domains.Set(domain, locale, "")
		t.populate(ctx, t.cache, OpTextdomain, logger, key, negativeMarker, t.negativeTTL)
		return true
	}

	t.domains.Set(domain, locale, filepath.Dir(mofile))

	value, err := encodeCatalog(catalog)
	if err != nil {
		level.Warn(logger).Log("msg", "failed to encode catalog", "err", err)
	} else {
		t.populate(ctx, t.cache, OpTextdomain, logger, key, value, t.defaultTTL)
	}

	t.l10n.Merge(domain, catalog)
	return true
}

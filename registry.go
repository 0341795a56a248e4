package transcache

import (
	"context"
	"sync"
)

// ScriptLoader reads a JSON script translation file. It reports false when
// the file is missing or holds no translations for handle and domain. An
// empty file means "no file".
type ScriptLoader interface {
	LoadScriptTranslations(ctx context.Context, file, handle, domain string) (string, bool)
}

// CatalogParser reads binary gettext catalogs.
type CatalogParser interface {
	Readable(path string) bool
	ParseFile(path string) (*Catalog, error)
}

// DomainRegistry records where the catalog of a domain/locale lives.
// An empty dir means the domain has no catalog at that locale.
type DomainRegistry interface {
	Set(domain, locale, dir string)
}

// TranslationRegistry holds the loaded catalog of every domain.
type TranslationRegistry interface {
	Get(domain string) (*Catalog, bool)
	Set(domain string, catalog *Catalog)
	// Merge installs catalog on top of the catalog already held for domain.
	Merge(domain string, catalog *Catalog)
}

// TextdomainRegistry is an in-memory DomainRegistry.
type TextdomainRegistry struct {
	mu   sync.RWMutex
	dirs map[string]map[string]string
}

// NewTextdomainRegistry creates an empty registry.
func NewTextdomainRegistry() *TextdomainRegistry {
	return &TextdomainRegistry{dirs: make(map[string]map[string]string)}
}

// Set records dir for domain at locale.
func (r *TextdomainRegistry) Set(domain, locale, dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	locales, ok := r.dirs[domain]
	if !ok {
		locales = make(map[string]string)
		r.dirs[domain] = locales
	}
	locales[locale] = dir
}

// Get returns the recorded dir for domain at locale. known is false when
// nothing was recorded; an empty dir with known true means "no catalog".
func (r *TextdomainRegistry) Get(domain, locale string) (dir string, known bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dir, known = r.dirs[domain][locale]
	return dir, known
}

// L10n is an in-memory TranslationRegistry.
type L10n struct {
	mu       sync.RWMutex
	catalogs map[string]*Catalog
}

// NewL10n creates an empty translation registry.
func NewL10n() *L10n {
	return &L10n{catalogs: make(map[string]*Catalog)}
}

// Get returns the catalog installed for domain.
func (l *L10n) Get(domain string) (*Catalog, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.catalogs[domain]
	return c, ok
}

// Set installs catalog for domain, replacing any previous one.
func (l *L10n) Set(domain string, catalog *Catalog) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.catalogs[domain] = catalog
}

// Merge installs catalog for domain merged on top of the existing one.
func (l *L10n) Merge(domain string, catalog *Catalog) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.catalogs[domain]; ok {
		catalog = catalog.MergeOnto(existing)
	}
	l.catalogs[domain] = catalog
}

// Domains returns the number of installed domains.
func (l *L10n) Domains() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.catalogs)
}

var (
	_ DomainRegistry      = (*TextdomainRegistry)(nil)
	_ TranslationRegistry = (*L10n)(nil)
)

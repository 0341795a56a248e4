package transcache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wearerequired/transcache/cache"
)

// mockParser serves catalogs from memory and counts parse calls.
type mockParser struct {
	mu        sync.Mutex
	catalogs  map[string]*Catalog
	broken    map[string]bool
	CallCount int
}

func newMockParser() *mockParser {
	return &mockParser{
		catalogs: make(map[string]*Catalog),
		broken:   make(map[string]bool),
	}
}

func (m *mockParser) Readable(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.catalogs[path]
	return ok || m.broken[path]
}

func (m *mockParser) ParseFile(path string) (*Catalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount++
	if m.broken[path] {
		return nil, &CatalogError{Message: "decoding catalog", Cause: errors.New("bad magic"), Path: path}
	}
	// hand out a copy so callers cannot mutate the fixture
	return m.catalogs[path].MergeOnto(nil), nil
}

func (m *mockParser) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// mockScriptLoader serves script payloads from memory.
type mockScriptLoader struct {
	mu        sync.Mutex
	payloads  map[string]string
	CallCount int
}

func (m *mockScriptLoader) LoadScriptTranslations(_ context.Context, file, handle, domain string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount++
	p, ok := m.payloads[file]
	return p, ok
}

func (m *mockScriptLoader) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// recordingStore remembers the TTL of every accepted add.
type recordingStore struct {
	*cache.InMemoryStore
	mu   sync.Mutex
	ttls map[string]time.Duration
}

func newRecordingStore() *recordingStore {
	return &recordingStore{
		InMemoryStore: cache.NewInMemoryStore(),
		ttls:          make(map[string]time.Duration),
	}
}

func (r *recordingStore) Add(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	ok := r.InMemoryStore.Add(ctx, key, value, ttl)
	if ok {
		r.mu.Lock()
		r.ttls[key] = ttl
		r.mu.Unlock()
	}
	return ok
}

func (r *recordingStore) ttl(key string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ttls[key]
}

func catalogOf(entries map[string]string) *Catalog {
	c := NewCatalog()
	for k, v := range entries {
		c.Entries[k] = []string{v}
	}
	return c
}

func noSalt() string { return "" }

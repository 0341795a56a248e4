package cache

import (
	"context"
	"sync"
	"time"
)

// cacheEntry holds a cached value with its expiry deadline.
type cacheEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiration
}

func (e cacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// InMemoryStore is a thread-safe in-process Store with per-entry TTL.
type InMemoryStore struct {
	cache map[string]cacheEntry
	mu    sync.RWMutex
	now   func() time.Time
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		cache: make(map[string]cacheEntry),
		now:   time.Now,
	}
}

// Fetch retrieves a value from the store.
// Returns the value and true if found and not expired.
func (s *InMemoryStore) Fetch(_ context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	entry, ok := s.cache[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if entry.expired(s.now()) {
		// Entry expired - clean it up
		s.mu.Lock()
		if cur, ok := s.cache[key]; ok && cur.expired(s.now()) {
			delete(s.cache, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	cp := make([]byte, len(entry.value))
	copy(cp, entry.value)
	return cp, true
}

// Add stores value unless a live entry for key already exists.
func (s *InMemoryStore) Add(_ context.Context, key string, value []byte, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if cur, ok := s.cache[key]; ok && !cur.expired(now) {
		return false
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = now.Add(ttl)
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	s.cache[key] = cacheEntry{value: cp, expiresAt: expiresAt}
	return true
}

// Len returns the number of entries in the store (including expired ones).
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

// Clear removes all entries from the store.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]cacheEntry)
}

// Entry is a live store entry with its remaining lifetime.
type Entry struct {
	Value []byte
	TTL   time.Duration // zero means no expiration
}

// Entries returns all non-expired entries.
// This is used for snapshot export.
func (s *InMemoryStore) Entries() map[string]Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]Entry, len(s.cache))
	now := s.now()

	for key, entry := range s.cache {
		if entry.expired(now) {
			continue
		}
		var ttl time.Duration
		if !entry.expiresAt.IsZero() {
			ttl = entry.expiresAt.Sub(now)
		}
		result[key] = Entry{Value: entry.value, TTL: ttl}
	}

	return result
}

// Verify InMemoryStore implements Store
var _ Store = (*InMemoryStore)(nil)

package cosmicstore

import (
	"context"
	"sync"
	"time"

	"github.com/veya-app/cosmic-engine/internal/domain/cosmic"
)

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore is an in-process memo cache for tests, development and
// single-instance deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry)}
}

// Get implements cosmic.Store. Expired entries read as misses and are
// dropped lazily.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if hasExpired(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return e.payload, true, nil
}

// Set caches the payload with an optional TTL.
func (s *MemoryStore) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	stored := make([]byte, len(payload))
	copy(stored, payload)
	s.mu.Lock()
	s.entries[key] = entry{payload: stored, expiresAt: exp}
	s.mu.Unlock()
	return nil
}

// Clear drops every entry, e.g. on an explicit cache reset.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ cosmic.Store = (*MemoryStore)(nil)

package handlers

import (
	"fmt"
	"sync"
	"time"

	"gridstress/internal/sim"
)

type storeEntry struct {
	result    *sim.Result
	expiresAt time.Time
}

// RunStore keeps completed simulation results in memory for a bounded time,
// so GET /simulate/:id/ledger can fetch a ledger that the original request
// chose not to inline. Results are dropped after the TTL; clients that need
// them longer should request include_ledger up front.
type RunStore struct {
	mu      sync.RWMutex
	entries map[string]storeEntry
	ttl     time.Duration
	seq     uint64
}

// NewRunStore creates a store with the given TTL. A non-positive TTL falls
// back to one hour.
func NewRunStore(ttl time.Duration) *RunStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RunStore{
		entries: make(map[string]storeEntry),
		ttl:     ttl,
	}
}

// Put stores a result and returns its run ID.
func (s *RunStore) Put(result *sim.Result) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := fmt.Sprintf("run-%06d", s.seq)
	s.entries[id] = storeEntry{
		result:    result,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.evictLocked()
	return id
}

// Get retrieves a stored result if present and not expired.
func (s *RunStore) Get(id string) (*sim.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.result, true
}

// Len reports the number of live entries.
func (s *RunStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// evictLocked removes expired entries. Called with the write lock held; runs
// on every Put so the store cannot grow unbounded without a cleanup goroutine.
func (s *RunStore) evictLocked() {
	now := time.Now()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}

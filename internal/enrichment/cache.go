package enrichment

import (
	"sync"
	"time"
)

// ttlStore is the cache both enrichment caches share: TTL expiry with lazy
// eviction, plus a hard capacity enforced by insertion-order eviction (not
// LRU - access does not refresh an entry's position).
type ttlStore[V any] struct {
	mu      sync.Mutex
	entries map[string]storeEntry[V]
	order   []string // guids in insertion order; refreshed keys move to the back
	ttl     time.Duration
	max     int
}

type storeEntry[V any] struct {
	value      V
	insertedAt time.Time
}

func newTTLStore[V any](ttl time.Duration, max int) *ttlStore[V] {
	return &ttlStore[V]{
		entries: make(map[string]storeEntry[V]),
		ttl:     ttl,
		max:     max,
	}
}

// get returns a live entry. Expired entries are evicted on the spot.
func (s *ttlStore[V]) get(key string, now time.Time) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if now.Sub(entry.insertedAt) >= s.ttl {
		s.removeLocked(key)
		var zero V
		return zero, false
	}
	return entry.value, true
}

// set inserts or refreshes an entry. On overflow, all TTL-expired entries
// are purged first; if the store is still over capacity, the single
// oldest-inserted entry is evicted.
func (s *ttlStore[V]) set(key string, value V, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; exists {
		s.removeFromOrderLocked(key)
	}
	s.entries[key] = storeEntry[V]{value: value, insertedAt: now}
	s.order = append(s.order, key)

	if len(s.entries) <= s.max {
		return
	}
	s.purgeExpiredLocked(now)
	for len(s.entries) > s.max && len(s.order) > 0 {
		s.removeLocked(s.order[0])
	}
}

// size reports the current number of entries, expired or not.
func (s *ttlStore[V]) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// clear drops everything.
func (s *ttlStore[V]) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]storeEntry[V])
	s.order = s.order[:0]
}

func (s *ttlStore[V]) purgeExpiredLocked(now time.Time) {
	for key, entry := range s.entries {
		if now.Sub(entry.insertedAt) >= s.ttl {
			s.removeLocked(key)
		}
	}
}

func (s *ttlStore[V]) removeLocked(key string) {
	delete(s.entries, key)
	s.removeFromOrderLocked(key)
}

func (s *ttlStore[V]) removeFromOrderLocked(key string) {
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

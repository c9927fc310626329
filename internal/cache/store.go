package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Size    int     `json:"size"`
	MaxSize int     `json:"max_size"`
	HitRate float64 `json:"hit_rate"`
}

type entry struct {
	value     any
	createdAt time.Time
	ttl       time.Duration
}

// Store is a capacity-bounded TTL key-value store. Expiry is lazy: a read
// that finds a stale entry removes it and reports a miss. When a write would
// exceed capacity, the single oldest-by-creation entry is evicted first.
// All read-modify-write sequences run under one mutex per instance.
type Store struct {
	mu         sync.Mutex
	entries    map[string]entry
	capacity   int
	defaultTTL time.Duration
	hits       int64
	misses     int64
	now        func() time.Time
}

// NewStore creates a bounded store. A capacity <= 0 falls back to 1.
func NewStore(capacity int, defaultTTL time.Duration) *Store {
	if capacity <= 0 {
		capacity = 1
	}
	return &Store{
		entries:    make(map[string]entry),
		capacity:   capacity,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Get returns the value for key, or false on a miss or expired entry.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		s.misses++
		return nil, false
	}
	if s.now().Sub(e.createdAt) > e.ttl {
		delete(s.entries, key)
		s.misses++
		return nil, false
	}

	s.hits++
	return e.value, true
}

// Set stores value under key. A ttl of 0 uses the store default.
func (s *Store) Set(key string, value any, ttl time.Duration) {
	if ttl == 0 {
		ttl = s.defaultTTL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.capacity {
		s.evictOldest()
	}

	s.entries[key] = entry{
		value:     value,
		createdAt: s.now(),
		ttl:       ttl,
	}
}

// evictOldest removes the entry with the earliest creation timestamp.
// Caller must hold the lock. O(capacity) scan; fine at these sizes.
func (s *Store) evictOldest() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for key, e := range s.entries {
		if first || e.createdAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = e.createdAt
			first = false
		}
	}
	if !first {
		delete(s.entries, oldestKey)
	}
}

// Delete removes key if present.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Clear removes all entries and resets the counters.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
	s.hits = 0
	s.misses = 0
}

// Stats returns a snapshot of the counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.hits + s.misses
	rate := 0.0
	if total > 0 {
		rate = float64(s.hits) / float64(total)
	}
	return Stats{
		Hits:    s.hits,
		Misses:  s.misses,
		Size:    len(s.entries),
		MaxSize: s.capacity,
		HitRate: rate,
	}
}

// Key derives a stable cache key from the given parts.
func Key(parts ...string) string {
	h := sha256.New()
	for i, part := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(part))
	}
	return "kampuschat:v1:" + hex.EncodeToString(h.Sum(nil))
}

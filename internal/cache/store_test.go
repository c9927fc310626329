package cache

import (
	"fmt"
	"testing"
	"time"
)

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time          { return c.current }
func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestStore(capacity int, ttl time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	s := NewStore(capacity, ttl)
	s.now = clock.now
	return s, clock
}

func TestStore_GetSet(t *testing.T) {
	s, _ := newTestStore(10, time.Minute)

	if _, ok := s.Get("missing"); ok {
		t.Error("expected miss for absent key")
	}

	s.Set("a", "value-a", 0)
	v, ok := s.Get("a")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if v.(string) != "value-a" {
		t.Errorf("expected value-a, got %v", v)
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	s, clock := newTestStore(10, time.Minute)

	s.Set("a", 1, 10*time.Second)

	// At exactly the TTL, still a hit.
	clock.advance(10 * time.Second)
	if _, ok := s.Get("a"); !ok {
		t.Error("expected hit at ttl boundary")
	}

	// Past the TTL, a miss, and the entry is removed.
	clock.advance(time.Nanosecond)
	if _, ok := s.Get("a"); ok {
		t.Error("expected miss past ttl")
	}
	if s.Stats().Size != 0 {
		t.Errorf("expected expired entry removed, size=%d", s.Stats().Size)
	}
}

func TestStore_CapacityEviction(t *testing.T) {
	s, clock := newTestStore(3, time.Minute)

	for i := 0; i < 10; i++ {
		s.Set(fmt.Sprintf("key-%d", i), i, 0)
		clock.advance(time.Second)
		if size := s.Stats().Size; size > 3 {
			t.Fatalf("size %d exceeds capacity after write %d", size, i)
		}
	}

	// The three most recently written entries survive.
	for i := 7; i < 10; i++ {
		if _, ok := s.Get(fmt.Sprintf("key-%d", i)); !ok {
			t.Errorf("expected key-%d retained", i)
		}
	}
	for i := 0; i < 7; i++ {
		if _, ok := s.Get(fmt.Sprintf("key-%d", i)); ok {
			t.Errorf("expected key-%d evicted", i)
		}
	}
}

func TestStore_OverwriteDoesNotEvict(t *testing.T) {
	s, clock := newTestStore(2, time.Minute)

	s.Set("a", 1, 0)
	clock.advance(time.Second)
	s.Set("b", 2, 0)
	clock.advance(time.Second)

	// Rewriting an existing key must not push anything out.
	s.Set("a", 3, 0)

	if _, ok := s.Get("b"); !ok {
		t.Error("expected b retained after overwrite of a")
	}
	v, _ := s.Get("a")
	if v.(int) != 3 {
		t.Errorf("expected overwritten value 3, got %v", v)
	}
}

func TestStore_Stats(t *testing.T) {
	s, _ := newTestStore(10, time.Minute)

	s.Set("a", 1, 0)
	s.Get("a")
	s.Get("a")
	s.Get("missing")

	stats := s.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("expected 2 hits 1 miss, got %d/%d", stats.Hits, stats.Misses)
	}
	if stats.Size != 1 {
		t.Errorf("expected size 1, got %d", stats.Size)
	}
	if stats.HitRate < 0.66 || stats.HitRate > 0.67 {
		t.Errorf("unexpected hit rate %f", stats.HitRate)
	}
}

func TestStore_Clear(t *testing.T) {
	s, _ := newTestStore(10, time.Minute)

	s.Set("a", 1, 0)
	s.Get("a")
	s.Clear()

	stats := s.Stats()
	if stats.Size != 0 || stats.Hits != 0 || stats.Misses != 0 {
		t.Errorf("expected reset stats after clear, got %+v", stats)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore(50, time.Minute)

	done := make(chan struct{})
	for g := 0; g < 8; g++ {
		go func(g int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("key-%d", i%60)
				s.Set(key, g, 0)
				s.Get(key)
			}
		}(g)
	}
	for g := 0; g < 8; g++ {
		<-done
	}

	if size := s.Stats().Size; size > 50 {
		t.Errorf("capacity invariant violated under concurrency: size=%d", size)
	}
}

func TestKey_Stable(t *testing.T) {
	if Key("a", "b") != Key("a", "b") {
		t.Error("expected identical keys for identical parts")
	}
	if Key("a", "b") == Key("ab") {
		t.Error("expected part separator to distinguish ab from a,b")
	}
}

package capability

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// HealthCache memoises availability probes so per-request checks do not hit
// the provider API. Probe results are trusted for the configured TTL.
type HealthCache struct {
	cache *gocache.Cache
}

// NewHealthCache creates a health cache with the given probe TTL.
func NewHealthCache(ttl time.Duration) *HealthCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &HealthCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Available returns the cached probe result for name, running probe on a
// cold or expired slot.
func (h *HealthCache) Available(ctx context.Context, name string, probe func(context.Context) bool) bool {
	if v, found := h.cache.Get(name); found {
		return v.(bool)
	}

	ok := probe(ctx)
	h.cache.Set(name, ok, gocache.DefaultExpiration)
	return ok
}

// Forget drops the cached result for name, forcing a fresh probe.
func (h *HealthCache) Forget(name string) {
	h.cache.Delete(name)
}

package cache

import (
	"strings"
	"time"

	"github.com/kampuschat/kampuschat/internal/model"
)

// ClassificationCache holds fused classification results keyed by normalized
// text. Only results above the confidence gate are stored, so low-value
// decisions never occupy a slot.
type ClassificationCache struct {
	store *Store
	gate  float64
}

// NewClassificationCache creates a classification cache with the given
// capacity, default TTL and write gate.
func NewClassificationCache(capacity int, ttl time.Duration, gate float64) *ClassificationCache {
	return &ClassificationCache{
		store: NewStore(capacity, ttl),
		gate:  gate,
	}
}

func classificationKey(text string) string {
	return Key(strings.ToLower(strings.TrimSpace(text)))
}

// Get returns the cached classification for text, if fresh.
func (c *ClassificationCache) Get(text string) (model.ClassificationResult, bool) {
	v, ok := c.store.Get(classificationKey(text))
	if !ok {
		return model.ClassificationResult{}, false
	}
	return v.(model.ClassificationResult), true
}

// Set stores the result if it clears the confidence gate.
// Returns whether the result was actually cached.
func (c *ClassificationCache) Set(text string, result model.ClassificationResult) bool {
	if result.Confidence <= c.gate {
		return false
	}
	c.store.Set(classificationKey(text), result, 0)
	return true
}

// Clear drops all entries.
func (c *ClassificationCache) Clear() { c.store.Clear() }

// Stats reports hit/miss/size counters.
func (c *ClassificationCache) Stats() Stats { return c.store.Stats() }

package cache

import (
	"time"

	"github.com/kampuschat/kampuschat/internal/model"
)

// AnswerCache holds extraction results keyed by a content hash of
// (question, context), so long context passages never grow the key space.
type AnswerCache struct {
	store *Store
	gate  float64
}

// NewAnswerCache creates an answer cache with the given capacity, default
// TTL and write gate.
func NewAnswerCache(capacity int, ttl time.Duration, gate float64) *AnswerCache {
	return &AnswerCache{
		store: NewStore(capacity, ttl),
		gate:  gate,
	}
}

func answerKey(question, context string) string {
	return Key(question, context)
}

// Get returns the cached extraction for (question, context), if fresh.
func (c *AnswerCache) Get(question, context string) (model.ExtractionResult, bool) {
	v, ok := c.store.Get(answerKey(question, context))
	if !ok {
		return model.ExtractionResult{}, false
	}
	return v.(model.ExtractionResult), true
}

// Set stores the result if it clears the confidence gate.
// Returns whether the result was actually cached.
func (c *AnswerCache) Set(question, context string, result model.ExtractionResult) bool {
	if result.Confidence <= c.gate {
		return false
	}
	c.store.Set(answerKey(question, context), result, 0)
	return true
}

// Clear drops all entries.
func (c *AnswerCache) Clear() { c.store.Clear() }

// Stats reports hit/miss/size counters.
func (c *AnswerCache) Stats() Stats { return c.store.Stats() }

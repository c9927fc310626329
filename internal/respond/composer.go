package respond

import (
	"context"
	"log"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kampuschat/kampuschat/internal/cache"
	"github.com/kampuschat/kampuschat/internal/capability"
	"github.com/kampuschat/kampuschat/internal/knowledge"
	"github.com/kampuschat/kampuschat/internal/model"
	"github.com/kampuschat/kampuschat/internal/worker"
)

// Rand supplies randomness for template selection. Injected so tests can
// use a deterministic sequence; cryptographic strength is not required.
type Rand interface {
	Intn(n int) int
}

// lockedRand guards a math/rand source for concurrent requests.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}

// NewRand returns the default concurrency-safe randomness source.
func NewRand() Rand {
	return &lockedRand{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// relatedContextLimit bounds how many sibling contexts knowledge mode
// searches after the primary context fails.
const relatedContextLimit = 3

// Composer produces the final message for each mode. Knowledge mode runs
// the extractor over primary then related contexts via the answer cache;
// conversational mode picks a template; fallback mode picks a context-aware
// clarification.
type Composer struct {
	store      *knowledge.Store // nil when the knowledge source is absent
	extractor  capability.Extractor
	answers    *cache.AnswerCache
	health     *capability.HealthCache
	limiter    *worker.Limiter
	thresholds model.ThresholdConfig
	rng        Rand
	verbose    bool
}

// NewComposer creates a composer. store and extractor may be nil; knowledge
// mode then always reports failure and the caller escalates.
func NewComposer(store *knowledge.Store, extractor capability.Extractor, answers *cache.AnswerCache,
	health *capability.HealthCache, limiter *worker.Limiter, th model.ThresholdConfig,
	rng Rand, verbose bool) *Composer {
	if rng == nil {
		rng = NewRand()
	}
	return &Composer{
		store:      store,
		extractor:  extractor,
		answers:    answers,
		health:     health,
		limiter:    limiter,
		thresholds: th,
		rng:        rng,
		verbose:    verbose,
	}
}

// Knowledge composes an extracted answer for the question. Returns false
// when no context yields an answer above the threshold; the caller then
// escalates to conversational or fallback. Re-running after a failure is
// idempotent: cache writes are keyed identically, so nothing double-charges.
func (c *Composer) Knowledge(ctx context.Context, question string, intent model.Intent,
	classificationConfidence float64) (*model.HybridResponse, bool) {
	if c.store == nil {
		return nil, false
	}

	primary, ok := c.store.Context(intent)
	if !ok {
		if c.verbose {
			log.Printf("no context for intent %s", intent)
		}
		return nil, false
	}

	started := time.Now()

	result, found := c.extract(ctx, question, primary, string(intent))
	if found && c.usable(result) {
		return c.knowledgeResponse(question, intent, classificationConfidence, result,
			string(intent), 1, started), true
	}

	related := c.store.Related(intent, relatedContextLimit)
	if len(related) == 0 {
		return nil, false
	}

	var candidates []model.ExtractionResult
	for _, r := range related {
		candidate, ok := c.extract(ctx, question, r.Text, string(r.Intent))
		if ok && candidate.Answer != "" {
			candidates = append(candidates, candidate)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	best := candidates[0]
	if !c.usable(best) {
		return nil, false
	}
	return c.knowledgeResponse(question, intent, classificationConfidence, best,
		"related_contexts", len(related), started), true
}

// usable reports whether an extraction clears the knowledge threshold after
// the answer-quality boost.
func (c *Composer) usable(result model.ExtractionResult) bool {
	return result.Answer != "" && c.boosted(result) > c.thresholds.QAConfidence
}

// boosted applies the extraction boost to answers long enough to be real
// spans rather than stray tokens.
func (c *Composer) boosted(result model.ExtractionResult) float64 {
	if len(result.Answer) <= 3 {
		return result.Confidence
	}
	return min(result.Confidence*c.thresholds.ExtractionBoost, c.thresholds.ExtractionCap)
}

func (c *Composer) knowledgeResponse(question string, intent model.Intent, classificationConfidence float64,
	result model.ExtractionResult, contextUsed string, contextsSearched int, started time.Time) *model.HybridResponse {
	return &model.HybridResponse{
		Message:    NaturalAnswer(question, result.Answer),
		Intent:     intent,
		Confidence: min(classificationConfidence, result.Confidence),
		Mode:       model.ModeKnowledge,
		Source:     model.SourceExtraction,
		Metadata: map[string]any{
			"qa_confidence":             result.Confidence,
			"classification_confidence": classificationConfidence,
			"context_used":              contextUsed,
			"contexts_searched":         contextsSearched,
			"answer_length":             len(result.Answer),
			"raw_answer":                result.Answer,
			"extraction_time_ms":        float64(time.Since(started).Microseconds()) / 1000.0,
		},
	}
}

// extract runs one cache-checked extraction. The first return is valid only
// when the second is true; a capability failure reports false and the caller
// moves to the next context.
func (c *Composer) extract(ctx context.Context, question, passage, contextKey string) (model.ExtractionResult, bool) {
	if cached, hit := c.answers.Get(question, passage); hit {
		return cached, true
	}

	if c.extractor == nil {
		return model.ExtractionResult{}, false
	}
	if c.health != nil && !c.health.Available(ctx, c.extractor.Name(), c.extractor.IsAvailable) {
		return model.ExtractionResult{}, false
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, "extractor"); err != nil {
			return model.ExtractionResult{}, false
		}
	}

	extraction, err := c.extractor.Extract(ctx, question, passage)
	if err != nil {
		if c.verbose {
			log.Printf("extraction failed for context %s: %v", contextKey, err)
		}
		return model.ExtractionResult{}, false
	}

	result := model.ExtractionResult{
		Answer:     extraction.Answer,
		Confidence: extraction.Score,
		Start:      extraction.Start,
		End:        extraction.End,
		ContextKey: contextKey,
	}
	c.answers.Set(question, passage, result)
	return result, true
}

// Conversational picks a template uniformly at random for the intent.
func (c *Composer) Conversational(intent model.Intent, classificationConfidence float64) *model.HybridResponse {
	templates := Templates[intent]
	if len(templates) == 0 {
		templates = []string{GenericTemplate}
	}

	selected := c.rng.Intn(len(templates))
	return &model.HybridResponse{
		Message:    templates[selected],
		Intent:     intent,
		Confidence: classificationConfidence,
		Mode:       model.ModeConversational,
		Source:     model.SourceTemplate,
		Metadata: map[string]any{
			"classification_confidence": classificationConfidence,
			"template_options":          len(templates),
			"template_selected":         selected,
		},
	}
}

// Fallback picks a context-aware clarification. Brief inputs and inputs
// without a question mark get a targeted hint prepended to the pool.
func (c *Composer) Fallback(intent model.Intent, confidence float64, question string) *model.HybridResponse {
	pool := make([]string, 0, len(FallbackMessages)+2)
	pool = append(pool, FallbackMessages...)

	if len(strings.Fields(question)) < 3 {
		pool = append([]string{BriefInputHint}, pool...)
	}
	if !strings.Contains(question, "?") {
		pool = append([]string{NoQuestionHint}, pool...)
	}

	reason := "unknown_intent"
	if confidence < c.thresholds.QAConfidence {
		reason = "low_confidence"
	}

	return &model.HybridResponse{
		Message:    pool[c.rng.Intn(len(pool))],
		Intent:     intent,
		Confidence: confidence,
		Mode:       model.ModeFallback,
		Source:     model.SourceFallback,
		Metadata: map[string]any{
			"classification_confidence": confidence,
			"question_length":           len(question),
			"question_words":            len(strings.Fields(question)),
			"fallback_reason":           reason,
		},
	}
}

// NaturalAnswer wraps a raw extracted span in a question-type-aware frame.
func NaturalAnswer(question, answer string) string {
	q := strings.ToLower(question)

	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(q, w) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("kapan", "when", "jam", "waktu"):
		return "Untuk informasi waktu: " + answer + ". Silakan cek jadwal terbaru di portal akademik."
	case contains("dimana", "where", "lokasi", "tempat"):
		return "Lokasi: " + answer + ". Untuk petunjuk lengkap, hubungi bagian informasi."
	case contains("bagaimana", "how", "cara"):
		return "Cara: " + answer + ". Jika memerlukan bantuan lebih lanjut, silakan hubungi admin."
	case contains("berapa", "how much", "biaya"):
		return "Informasi biaya: " + answer + ". Hubungi bagian keuangan untuk detail lengkap."
	default:
		return answer + ". Untuk informasi lebih lengkap, silakan hubungi bagian terkait."
	}
}

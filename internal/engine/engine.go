package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/kampuschat/kampuschat/internal/cache"
	"github.com/kampuschat/kampuschat/internal/capability"
	"github.com/kampuschat/kampuschat/internal/fuse"
	"github.com/kampuschat/kampuschat/internal/knowledge"
	"github.com/kampuschat/kampuschat/internal/model"
	"github.com/kampuschat/kampuschat/internal/respond"
	"github.com/kampuschat/kampuschat/internal/score"
	"github.com/kampuschat/kampuschat/internal/worker"
)

// Engine is the hybrid decision pipeline: classification-cache lookup,
// keyword/classifier fusion, mode routing, and response composition over
// the knowledge store and answer cache.
type Engine struct {
	cfg             *model.Config
	scorer          *score.Scorer
	fuser           *fuse.Fuser
	router          *respond.Router
	composer        *respond.Composer
	classifications *cache.ClassificationCache
	answers         *cache.AnswerCache
	store           *knowledge.Store
	started         time.Time
}

// New builds an engine from configuration. Capability or knowledge-source
// absence degrades the affected mode; only misconfiguration is an error.
func New(cfg *model.Config) (*Engine, error) {
	capCfg := capability.ConfigFromModel(cfg.Capability)

	classifier, err := capability.NewClassifier(capCfg)
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}
	extractor, err := capability.NewExtractor(capCfg)
	if err != nil {
		return nil, fmt.Errorf("build extractor: %w", err)
	}

	store := loadKnowledge(cfg)

	return Assemble(cfg, classifier, extractor, store, nil), nil
}

// loadKnowledge resolves the knowledge source: configured file, or built-in
// contexts. A configured file that fails to load degrades knowledge mode
// entirely, logged once here rather than per request.
func loadKnowledge(cfg *model.Config) *knowledge.Store {
	if cfg.Knowledge.File == "" {
		return knowledge.DefaultStore()
	}
	store, err := knowledge.Load(cfg.Knowledge.File)
	if err != nil {
		log.Printf("knowledge base unavailable, knowledge mode degraded to fallback: %v", err)
		return nil
	}
	return store
}

// Assemble wires an engine from explicit components. classifier, extractor,
// store and rng may each be nil (degraded capability, built-in randomness).
func Assemble(cfg *model.Config, classifier capability.Classifier, extractor capability.Extractor,
	store *knowledge.Store, rng respond.Rand) *Engine {
	th := cfg.Thresholds
	verbose := cfg.Output.Verbose

	health := capability.NewHealthCache(cfg.Capability.HealthTTL)
	limiter := worker.NewLimiter(cfg.Capability.RatePerSecond, cfg.Capability.Burst)

	classifications := cache.NewClassificationCache(
		cfg.Cache.ClassificationCapacity, cfg.Cache.ClassificationTTL, th.ClassificationCacheGate)
	answers := cache.NewAnswerCache(
		cfg.Cache.AnswerCapacity, cfg.Cache.AnswerTTL, th.AnswerCacheGate)

	scorer := score.NewScorer(score.DefaultTable(), th)
	fuser := fuse.New(scorer, classifier, health, limiter, th, verbose)
	composer := respond.NewComposer(store, extractor, answers, health, limiter, th, rng, verbose)

	return &Engine{
		cfg:             cfg,
		scorer:          scorer,
		fuser:           fuser,
		router:          respond.NewRouter(th.QAConfidence),
		composer:        composer,
		classifications: classifications,
		answers:         answers,
		store:           store,
		started:         time.Now(),
	}
}

// Respond answers one query. The caller always receives a well-formed
// response, even under total capability failure.
func (e *Engine) Respond(ctx context.Context, text string) (response *model.HybridResponse) {
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			response = &model.HybridResponse{
				Message:    respond.EmergencyMessage,
				Intent:     model.IntentUnknown,
				Confidence: 0.0,
				Mode:       model.ModeFallback,
				Source:     model.SourceError,
				Metadata:   map[string]any{"error": fmt.Sprint(r)},
			}
		}
		response.ProcessingTimeMS = float64(time.Since(started).Microseconds()) / 1000.0
	}()

	normalized := score.Normalize(text)

	classification, cacheHit := e.classify(ctx, normalized)
	mode := e.router.Route(classification.Intent, classification.Confidence)
	response = e.compose(ctx, normalized, classification, mode)

	response.Metadata["determined_mode"] = string(mode)
	response.Metadata["classification_source"] = string(classification.Source)
	response.Metadata["classification_cache_hit"] = cacheHit
	response.Metadata["text_length"] = len(text)
	if e.cfg.Output.Debug {
		response.Metadata["normalized_text"] = normalized
		response.Metadata["matched_keywords"] = classification.Matched
	}
	return response
}

// classify resolves the fused classification through the cache: lookup,
// fuse on miss, gated write.
func (e *Engine) classify(ctx context.Context, normalized string) (model.ClassificationResult, bool) {
	if e.cfg.Cache.Enabled {
		if cached, hit := e.classifications.Get(normalized); hit {
			return cached, true
		}
	}

	result := e.fuser.Fuse(ctx, normalized)
	if e.cfg.Cache.Enabled {
		e.classifications.Set(normalized, result)
	}
	return result, false
}

// compose generates the mode's response. A knowledge-mode miss escalates to
// conversational when the intent is eligible, else fallback; the escalation
// is idempotent because all cache writes are keyed identically on re-entry.
func (e *Engine) compose(ctx context.Context, question string,
	classification model.ClassificationResult, mode model.Mode) *model.HybridResponse {
	intent, confidence := classification.Intent, classification.Confidence

	if mode == model.ModeKnowledge {
		if response, ok := e.composer.Knowledge(ctx, question, intent, confidence); ok {
			return response
		}
		if intent.IsConversational() {
			return e.composer.Conversational(intent, confidence)
		}
		return e.composer.Fallback(intent, confidence, question)
	}

	if mode == model.ModeConversational {
		return e.composer.Conversational(intent, confidence)
	}
	return e.composer.Fallback(intent, confidence, question)
}

// Batch answers texts concurrently, preserving input order. A failed text
// yields a fallback-error result in its slot; the batch never aborts.
func (e *Engine) Batch(ctx context.Context, texts []string) []*model.HybridResponse {
	processor := worker.NewBatchProcessor(e, e.cfg.Concurrency.Workers)
	return processor.ProcessTexts(ctx, texts)
}

// Stats reports engine-level diagnostics.
type Stats struct {
	UptimeSeconds       float64          `json:"uptime_seconds"`
	ClassificationCache cache.Stats      `json:"classification_cache"`
	AnswerCache         cache.Stats      `json:"answer_cache"`
	Knowledge           *knowledge.Stats `json:"knowledge,omitempty"`
	KnowledgeIntents    int              `json:"knowledge_intents"`
	Conversational      int              `json:"conversational_intents"`
	TotalKeywords       int              `json:"total_keywords"`
	QAThreshold         float64          `json:"qa_confidence_threshold"`
}

// Stats returns a snapshot of the engine.
func (e *Engine) Stats() Stats {
	s := Stats{
		UptimeSeconds:       time.Since(e.started).Seconds(),
		ClassificationCache: e.classifications.Stats(),
		AnswerCache:         e.answers.Stats(),
		KnowledgeIntents:    len(model.KnowledgeIntents),
		Conversational:      len(model.ConversationalIntents),
		TotalKeywords:       e.scorer.Table().TotalKeywords(),
		QAThreshold:         e.cfg.Thresholds.QAConfidence,
	}
	if e.store != nil {
		ks := e.store.Stats()
		s.Knowledge = &ks
	}
	return s
}

// ClearCaches drops both cache tiers.
func (e *Engine) ClearCaches() {
	e.classifications.Clear()
	e.answers.Clear()
}

package model

import "time"

// Config holds the complete engine configuration.
// Loaded once at startup; changes require a restart.
type Config struct {
	Cache       CacheConfig       `yaml:"cache"`
	Thresholds  ThresholdConfig   `yaml:"thresholds"`
	Capability  CapabilityConfig  `yaml:"capability"`
	Knowledge   KnowledgeConfig   `yaml:"knowledge"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// CacheConfig bounds the two cache tiers.
type CacheConfig struct {
	Enabled                bool          `yaml:"enabled"`
	ClassificationCapacity int           `yaml:"classification_capacity"`
	ClassificationTTL      time.Duration `yaml:"classification_ttl"`
	AnswerCapacity         int           `yaml:"answer_capacity"`
	AnswerTTL              time.Duration `yaml:"answer_ttl"`
}

// ThresholdConfig names the tuned confidence heuristics. These encode
// observed behaviour, not law; override without touching fusion logic.
type ThresholdConfig struct {
	// QAConfidence gates knowledge-mode routing and extraction acceptance.
	QAConfidence float64 `yaml:"qa_confidence"`
	// ClassifierAgreement is the minimum classifier confidence for fusion.
	ClassifierAgreement float64 `yaml:"classifier_agreement"`
	// KeywordAgreement is the minimum keyword confidence for fusion.
	KeywordAgreement float64 `yaml:"keyword_agreement"`
	// ClassificationCacheGate is the minimum confidence worth caching.
	ClassificationCacheGate float64 `yaml:"classification_cache_gate"`
	// AnswerCacheGate is the minimum extraction confidence worth caching.
	AnswerCacheGate float64 `yaml:"answer_cache_gate"`
	// WholeWordBonus is added per keyword matched on a word boundary.
	WholeWordBonus float64 `yaml:"whole_word_bonus"`
	// FusedBoost multiplies classifier confidence when both signals agree.
	FusedBoost float64 `yaml:"fused_boost"`
	// FusedCap bounds the fused confidence.
	FusedCap float64 `yaml:"fused_cap"`
	// KeywordBoost multiplies the best keyword score.
	KeywordBoost float64 `yaml:"keyword_boost"`
	// KeywordCap bounds the boosted keyword confidence.
	KeywordCap float64 `yaml:"keyword_cap"`
	// ExtractionBoost multiplies extraction confidence for usable answers.
	ExtractionBoost float64 `yaml:"extraction_boost"`
	// ExtractionCap bounds the boosted extraction confidence.
	ExtractionCap float64 `yaml:"extraction_cap"`
	// UnknownFloor distinguishes "tried and found nothing" from "never evaluated".
	UnknownFloor float64 `yaml:"unknown_floor"`
}

// CapabilityConfig configures the external classifier and extractor.
type CapabilityConfig struct {
	// Provider name: "openai" or "" (disabled; keyword-only fusion).
	Provider string `yaml:"provider"`
	// Model name used for both capabilities.
	Model string `yaml:"model"`
	// APIKey for the provider.
	APIKey string `yaml:"api_key,omitempty"`
	// BaseURL for OpenAI-compatible endpoints (e.g. a local server).
	BaseURL string `yaml:"base_url,omitempty"`
	// Timeout bounds each outbound capability call.
	Timeout time.Duration `yaml:"timeout"`
	// RatePerSecond and Burst bound outbound call rate per capability.
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`
	// HealthTTL is how long an availability probe result is trusted.
	HealthTTL time.Duration `yaml:"health_ttl"`
}

// KnowledgeConfig locates the knowledge content source.
type KnowledgeConfig struct {
	// File is the YAML knowledge base path. Empty means built-in contexts.
	File string `yaml:"file,omitempty"`
}

// ConcurrencyConfig sizes the batch worker pool.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig controls diagnostics.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
	Debug   bool `yaml:"debug"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Enabled:                true,
			ClassificationCapacity: 1000,
			ClassificationTTL:      5 * time.Minute,
			AnswerCapacity:         1000,
			AnswerTTL:              5 * time.Minute,
		},
		Thresholds: ThresholdConfig{
			QAConfidence:            0.3,
			ClassifierAgreement:     0.4,
			KeywordAgreement:        0.3,
			ClassificationCacheGate: 0.5,
			AnswerCacheGate:         0.3,
			WholeWordBonus:          0.15,
			FusedBoost:              1.1,
			FusedCap:                0.85,
			KeywordBoost:            1.1,
			KeywordCap:              0.9,
			ExtractionBoost:         1.2,
			ExtractionCap:           0.95,
			UnknownFloor:            0.1,
		},
		Capability: CapabilityConfig{
			Provider:      "",
			Timeout:       10 * time.Second,
			RatePerSecond: 5,
			Burst:         5,
			HealthTTL:     time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}

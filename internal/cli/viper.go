package cli

import (
	"github.com/kampuschat/kampuschat/internal/model"
	"github.com/spf13/viper"
)

// applyViper overlays config file and KAMPUSCHAT_* environment values onto
// the defaults. Only keys that are actually set override.
func applyViper(cfg *model.Config) {
	setString := func(key string, target *string) {
		if viper.IsSet(key) {
			*target = viper.GetString(key)
		}
	}
	setInt := func(key string, target *int) {
		if viper.IsSet(key) {
			*target = viper.GetInt(key)
		}
	}
	setFloat := func(key string, target *float64) {
		if viper.IsSet(key) {
			*target = viper.GetFloat64(key)
		}
	}

	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	setInt("cache.classification_capacity", &cfg.Cache.ClassificationCapacity)
	setInt("cache.answer_capacity", &cfg.Cache.AnswerCapacity)
	if viper.IsSet("cache.classification_ttl") {
		cfg.Cache.ClassificationTTL = viper.GetDuration("cache.classification_ttl")
	}
	if viper.IsSet("cache.answer_ttl") {
		cfg.Cache.AnswerTTL = viper.GetDuration("cache.answer_ttl")
	}

	setFloat("thresholds.qa_confidence", &cfg.Thresholds.QAConfidence)
	setFloat("thresholds.classifier_agreement", &cfg.Thresholds.ClassifierAgreement)
	setFloat("thresholds.keyword_agreement", &cfg.Thresholds.KeywordAgreement)
	setFloat("thresholds.classification_cache_gate", &cfg.Thresholds.ClassificationCacheGate)
	setFloat("thresholds.answer_cache_gate", &cfg.Thresholds.AnswerCacheGate)

	setString("capability.provider", &cfg.Capability.Provider)
	setString("capability.model", &cfg.Capability.Model)
	setString("capability.api_key", &cfg.Capability.APIKey)
	setString("capability.base_url", &cfg.Capability.BaseURL)
	if viper.IsSet("capability.timeout") {
		cfg.Capability.Timeout = viper.GetDuration("capability.timeout")
	}
	setFloat("capability.rate_per_second", &cfg.Capability.RatePerSecond)
	setInt("capability.burst", &cfg.Capability.Burst)
	if viper.IsSet("capability.health_ttl") {
		cfg.Capability.HealthTTL = viper.GetDuration("capability.health_ttl")
	}

	setString("knowledge.file", &cfg.Knowledge.File)
	setInt("concurrency.workers", &cfg.Concurrency.Workers)
}

package capability

import (
	"fmt"
	"strings"

	"github.com/kampuschat/kampuschat/internal/model"
)

// NewClassifier creates a classifier provider from configuration.
// An empty provider name disables the capability (nil, nil).
func NewClassifier(cfg Config) (Classifier, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIClassifier(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown capability provider: %s (supported: openai)", cfg.Provider)
	}
}

// NewExtractor creates an extractor provider from configuration.
// An empty provider name disables the capability (nil, nil).
func NewExtractor(cfg Config) (Extractor, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIExtractor(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown capability provider: %s (supported: openai)", cfg.Provider)
	}
}

// ConfigFromModel converts the engine configuration to a capability Config.
func ConfigFromModel(cfg model.CapabilityConfig) Config {
	labels := make([]string, len(model.Intents))
	for i, intent := range model.Intents {
		labels[i] = string(intent)
	}
	return Config{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.Timeout,
		Labels:   labels,
	}
}

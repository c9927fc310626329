package capability

import (
	"context"
	"time"
)

// Extraction is a span answer located within a context passage.
// Answer is empty when no answer was found. Score is within [0,1].
type Extraction struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
}

// Classifier scores a text against a fixed label set. Implementations may
// fail or time out; callers recover by falling back to keyword scoring.
type Classifier interface {
	// Name returns the provider name.
	Name() string

	// Classify returns a per-label score vector for the text.
	Classify(ctx context.Context, text string) (map[string]float64, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// Extractor finds a substring answer to a question within a context.
type Extractor interface {
	// Name returns the provider name.
	Name() string

	// Extract locates an answer span for question within context.
	Extract(ctx context.Context, question, context_ string) (*Extraction, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// Config holds provider configuration for both capabilities.
type Config struct {
	// Provider name: "openai" or "" (disabled).
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for the provider.
	APIKey string

	// BaseURL for OpenAI-compatible endpoints (e.g. a local server).
	BaseURL string

	// Timeout bounds each outbound call.
	Timeout time.Duration

	// Labels is the label set the classifier scores, in configured order.
	Labels []string
}

package model

// Source identifies which signal produced a classification or response.
type Source string

const (
	SourceKeyword       Source = "keyword_classification" // keyword scorer alone
	SourceClassifier    Source = "neural_classification"  // external classifier alone
	SourceFused         Source = "hybrid_classification"  // agreeing keyword + classifier
	SourceExtraction    Source = "qa_extraction"          // answer extracted from a context
	SourceTemplate      Source = "template"               // conversational template
	SourceFallback      Source = "fallback"               // clarification/apology message
	SourceFallbackError Source = "fallback_error"         // per-item failure inside a batch
	SourceError         Source = "error"                  // total internal failure
)

// Mode is the response strategy selected for a query.
type Mode string

const (
	ModeKnowledge      Mode = "knowledge"
	ModeConversational Mode = "conversational"
	ModeFallback       Mode = "fallback"
)

// ClassificationResult is the fused intent decision for one query.
type ClassificationResult struct {
	Intent     Intent   `json:"intent"`
	Confidence float64  `json:"confidence"` // always within [0,1]
	Source     Source   `json:"source"`
	Matched    []string `json:"matched_keywords,omitempty"`
}

// ExtractionResult is an answer located within a single context passage.
type ExtractionResult struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	ContextKey string  `json:"context_key"` // intent whose context was searched
}

// HybridResponse is the final result returned to the caller.
// Immutable once constructed; Metadata carries the confidences, timings and
// counts used to decide, sufficient to reconstruct the decision.
type HybridResponse struct {
	Message          string         `json:"message"`
	Intent           Intent         `json:"intent"`
	Confidence       float64        `json:"confidence"`
	Mode             Mode           `json:"mode"`
	Source           Source         `json:"source"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	ProcessingTimeMS float64        `json:"processing_time_ms"`
}

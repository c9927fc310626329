package respond

import "github.com/kampuschat/kampuschat/internal/model"

// Router selects the response strategy from the fused intent/confidence.
// Stateless per call; the decision is a pure function of its inputs.
type Router struct {
	threshold float64
}

// NewRouter creates a router with the knowledge-mode confidence threshold.
func NewRouter(qaThreshold float64) *Router {
	return &Router{threshold: qaThreshold}
}

// Route picks a mode. Conversational intents route to conversational at any
// confidence, including zero; knowledge intents need confidence above the
// threshold; everything else falls back.
func (r *Router) Route(intent model.Intent, confidence float64) model.Mode {
	switch {
	case intent.IsConversational():
		return model.ModeConversational
	case intent.IsKnowledge() && confidence > r.threshold:
		return model.ModeKnowledge
	default:
		return model.ModeFallback
	}
}

package fuse

import (
	"context"
	"log"
	"strings"

	"github.com/kampuschat/kampuschat/internal/capability"
	"github.com/kampuschat/kampuschat/internal/model"
	"github.com/kampuschat/kampuschat/internal/score"
	"github.com/kampuschat/kampuschat/internal/worker"
)

// Fuser combines the keyword scorer with the external classifier into one
// classification decision. Classifier failure degrades to keyword-only
// fusion; it is never surfaced to the caller.
type Fuser struct {
	scorer     *score.Scorer
	classifier capability.Classifier // nil when the capability is disabled
	health     *capability.HealthCache
	limiter    *worker.Limiter
	thresholds model.ThresholdConfig
	verbose    bool
}

// New creates a fuser. classifier may be nil.
func New(scorer *score.Scorer, classifier capability.Classifier, health *capability.HealthCache,
	limiter *worker.Limiter, th model.ThresholdConfig, verbose bool) *Fuser {
	return &Fuser{
		scorer:     scorer,
		classifier: classifier,
		health:     health,
		limiter:    limiter,
		thresholds: th,
		verbose:    verbose,
	}
}

// Fuse classifies text. The returned confidence is always within [0,1] and
// the intent is always drawn from the configured set.
func (f *Fuser) Fuse(ctx context.Context, text string) model.ClassificationResult {
	keyword := f.scorer.Best(text)

	// Empty text is a valid "found nothing" case; never worth an external call.
	if strings.TrimSpace(text) == "" {
		return f.keywordOnly(keyword)
	}

	scores, ok := f.classify(ctx, text)
	if !ok {
		return f.keywordOnly(keyword)
	}

	label, neuralConfidence := topLabel(scores)
	neuralIntent := model.MapLabel(label)
	if neuralIntent == model.IntentUnknown && keyword.Intent != model.IntentUnknown {
		// Generic label; fall back to the keyword context for the mapping.
		neuralIntent = keyword.Intent
	}

	switch {
	case neuralIntent == keyword.Intent &&
		neuralConfidence > f.thresholds.ClassifierAgreement &&
		keyword.Confidence > f.thresholds.KeywordAgreement:
		return model.ClassificationResult{
			Intent:     neuralIntent,
			Confidence: min(neuralConfidence*f.thresholds.FusedBoost, f.thresholds.FusedCap),
			Source:     model.SourceFused,
			Matched:    keyword.Matched,
		}

	case keyword.Confidence > neuralConfidence:
		return f.keywordOnly(keyword)

	default:
		return f.floored(model.ClassificationResult{
			Intent:     neuralIntent,
			Confidence: neuralConfidence,
			Source:     model.SourceClassifier,
		})
	}
}

// classify runs the external classifier, reporting false on any failure.
func (f *Fuser) classify(ctx context.Context, text string) (map[string]float64, bool) {
	if f.classifier == nil {
		return nil, false
	}
	if f.health != nil && !f.health.Available(ctx, f.classifier.Name(), f.classifier.IsAvailable) {
		return nil, false
	}
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, "classifier"); err != nil {
			return nil, false
		}
	}

	scores, err := f.classifier.Classify(ctx, text)
	if err != nil {
		if f.verbose {
			log.Printf("classifier unavailable, using keywords only: %v", err)
		}
		return nil, false
	}
	if len(scores) == 0 {
		return nil, false
	}
	return scores, true
}

func (f *Fuser) keywordOnly(keyword score.KeywordResult) model.ClassificationResult {
	return f.floored(model.ClassificationResult{
		Intent:     keyword.Intent,
		Confidence: keyword.Confidence,
		Source:     model.SourceKeyword,
		Matched:    keyword.Matched,
	})
}

// floored applies the unknown floor: a zero-confidence unknown means "tried
// and found nothing", distinguished from "never evaluated".
func (f *Fuser) floored(result model.ClassificationResult) model.ClassificationResult {
	if result.Confidence == 0 && result.Intent == model.IntentUnknown {
		result.Confidence = f.thresholds.UnknownFloor
	}
	return result
}

// topLabel returns the highest-scoring label. Iteration order over the map
// is irrelevant: only a strictly greater score replaces the current top, and
// equal top scores in a score vector are genuinely ambiguous either way.
func topLabel(scores map[string]float64) (string, float64) {
	var best string
	bestScore := -1.0
	for label, s := range scores {
		if s > bestScore {
			best = label
			bestScore = s
		}
	}
	if bestScore < 0 {
		return "", 0
	}
	if bestScore > 1 {
		bestScore = 1
	}
	return best, bestScore
}

package score

import (
	"regexp"
	"strings"

	"github.com/kampuschat/kampuschat/internal/model"
)

// Scorer maps raw text to per-intent keyword match scores. Pure function of
// the text and the table; safe for concurrent use.
type Scorer struct {
	table *Table
	bonus float64 // per whole-word match
	boost float64 // multiplier on the best score
	cap   float64 // upper bound on the boosted confidence
}

// KeywordResult is the scorer's best-intent summary for one text.
type KeywordResult struct {
	Intent     model.Intent
	Confidence float64
	Matched    []string
}

// NewScorer creates a scorer over the given table and tuned constants.
func NewScorer(table *Table, th model.ThresholdConfig) *Scorer {
	return &Scorer{
		table: table,
		bonus: th.WholeWordBonus,
		boost: th.KeywordBoost,
		cap:   th.KeywordCap,
	}
}

// Table returns the scorer's keyword table.
func (s *Scorer) Table() *Table { return s.table }

// Score returns a confidence in [0,1] for every intent in the table.
// Base score is matched/total keywords; each whole-word match adds the
// configured bonus, capped at 1.0. Empty text scores all zeros.
func (s *Scorer) Score(text string) map[model.Intent]float64 {
	lower := strings.ToLower(text)
	scores := make(map[model.Intent]float64, len(s.table.Intents()))

	for _, intent := range s.table.Intents() {
		score, _ := s.scoreIntent(lower, intent)
		scores[intent] = score
	}

	return scores
}

// Best returns the highest-scoring intent with a boosted confidence.
// Ties resolve to the first intent in table order; only a strictly greater
// score replaces the current best. A zero best score maps to IntentUnknown.
func (s *Scorer) Best(text string) KeywordResult {
	lower := strings.ToLower(text)

	best := KeywordResult{Intent: model.IntentUnknown}
	bestScore := 0.0

	for _, intent := range s.table.Intents() {
		score, matched := s.scoreIntent(lower, intent)
		if score > bestScore {
			bestScore = score
			best = KeywordResult{Intent: intent, Matched: matched}
		}
	}

	if bestScore == 0 {
		return KeywordResult{Intent: model.IntentUnknown}
	}

	best.Confidence = min(bestScore*s.boost, s.cap)
	return best
}

func (s *Scorer) scoreIntent(lower string, intent model.Intent) (float64, []string) {
	keywords := s.table.Keywords(intent)
	if len(keywords) == 0 {
		return 0, nil
	}

	var matched []string
	wholeWords := 0
	padded := " " + lower + " "

	for _, kw := range keywords {
		if !strings.Contains(lower, kw) {
			continue
		}
		matched = append(matched, kw)
		if strings.Contains(padded, " "+kw+" ") ||
			strings.HasPrefix(lower, kw) ||
			strings.HasSuffix(lower, kw) {
			wholeWords++
		}
	}

	if len(matched) == 0 {
		return 0, nil
	}

	base := float64(len(matched)) / float64(len(keywords))
	return min(base+float64(wholeWords)*s.bonus, 1.0), matched
}

var (
	whitespaceRE = regexp.MustCompile(`\s+`)

	// Common Indonesian chat shorthand, expanded before scoring.
	shorthand = map[string]string{
		"gmn": "bagaimana",
		"dmn": "dimana",
		"yg":  "yang",
		"tdk": "tidak",
		"ga":  "tidak",
		"gak": "tidak",
	}
)

// Normalize collapses whitespace and expands chat shorthand so the scorer
// and the classifier see the same surface form.
func Normalize(text string) string {
	cleaned := whitespaceRE.ReplaceAllString(strings.TrimSpace(text), " ")
	if cleaned == "" {
		return ""
	}

	words := strings.Split(cleaned, " ")
	for i, word := range words {
		if full, ok := shorthand[strings.ToLower(word)]; ok {
			words[i] = full
		}
	}
	return strings.Join(words, " ")
}

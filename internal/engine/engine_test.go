package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kampuschat/kampuschat/internal/capability"
	"github.com/kampuschat/kampuschat/internal/knowledge"
	"github.com/kampuschat/kampuschat/internal/model"
	"github.com/kampuschat/kampuschat/internal/respond"
)

// spyClassifier counts calls and returns a canned score vector.
type spyClassifier struct {
	scores map[string]float64
	panics bool
	calls  int
}

func (s *spyClassifier) Name() string { return "spy" }

func (s *spyClassifier) Classify(_ context.Context, _ string) (map[string]float64, error) {
	s.calls++
	if s.panics {
		panic("classifier blew up")
	}
	return s.scores, nil
}

func (s *spyClassifier) IsAvailable(_ context.Context) bool { return true }

// spyExtractor counts calls and answers every passage the same way.
type spyExtractor struct {
	answer capability.Extraction
	calls  int
}

func (s *spyExtractor) Name() string { return "spy" }

func (s *spyExtractor) Extract(_ context.Context, _, _ string) (*capability.Extraction, error) {
	s.calls++
	e := s.answer
	return &e, nil
}

func (s *spyExtractor) IsAvailable(_ context.Context) bool { return true }

type fixedRand struct{ n int }

func (f fixedRand) Intn(int) int { return f.n }

func testEngine(classifier capability.Classifier, extractor capability.Extractor) *Engine {
	return Assemble(model.DefaultConfig(), classifier, extractor, knowledge.DefaultStore(), fixedRand{0})
}

func TestEngine_EmptyText(t *testing.T) {
	classifier := &spyClassifier{}
	extractor := &spyExtractor{}
	e := testEngine(classifier, extractor)

	resp := e.Respond(context.Background(), "   ")

	if resp.Intent != model.IntentUnknown {
		t.Errorf("expected unknown intent, got %s", resp.Intent)
	}
	if resp.Confidence != 0.1 {
		t.Errorf("expected floor confidence 0.1, got %f", resp.Confidence)
	}
	if resp.Mode != model.ModeFallback {
		t.Errorf("expected fallback mode, got %s", resp.Mode)
	}
	if classifier.calls != 0 || extractor.calls != 0 {
		t.Errorf("expected no capability calls for empty text, got %d/%d",
			classifier.calls, extractor.calls)
	}
}

func TestEngine_KeywordOnlyKnowledge(t *testing.T) {
	// no classifier configured; strong keyword evidence still reaches
	// knowledge mode
	extractor := &spyExtractor{answer: capability.Extraction{
		Answer: "pukul 07.00 WIB hingga 21.00 WIB", Score: 0.8,
	}}
	e := testEngine(nil, extractor)

	resp := e.Respond(context.Background(), "kapan jadwal kuliah dan ujian uts")

	if resp.Mode != model.ModeKnowledge {
		t.Fatalf("expected knowledge mode, got %s", resp.Mode)
	}
	if resp.Source != model.SourceExtraction {
		t.Errorf("expected extraction source, got %s", resp.Source)
	}
	if resp.Metadata["classification_source"] != string(model.SourceKeyword) {
		t.Errorf("expected keyword classification, got %v", resp.Metadata["classification_source"])
	}
	if !strings.Contains(resp.Message, "pukul 07.00 WIB") {
		t.Errorf("expected extracted span in message, got %q", resp.Message)
	}
}

func TestEngine_RepeatQueryHitsCaches(t *testing.T) {
	extractor := &spyExtractor{answer: capability.Extraction{
		Answer: "pukul 07.00 WIB hingga 21.00 WIB", Score: 0.8,
	}}
	e := testEngine(nil, extractor)

	text := "kapan jadwal kuliah dan ujian uts"

	first := e.Respond(context.Background(), text)
	if first.Metadata["classification_cache_hit"] != false {
		t.Error("expected cold classification cache on first call")
	}
	callsAfterFirst := extractor.calls

	second := e.Respond(context.Background(), text)
	if second.Metadata["classification_cache_hit"] != true {
		t.Error("expected classification cache hit on repeat")
	}
	if extractor.calls != callsAfterFirst {
		t.Errorf("expected answer cache hit, extractor ran %d more times",
			extractor.calls-callsAfterFirst)
	}
	if second.Message != first.Message || second.Intent != first.Intent {
		t.Error("expected identical response on repeat")
	}
}

func TestEngine_CacheDisabled(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	e := Assemble(cfg, nil, nil, knowledge.DefaultStore(), fixedRand{0})

	text := "kapan jadwal kuliah dan ujian uts"
	e.Respond(context.Background(), text)
	resp := e.Respond(context.Background(), text)

	if resp.Metadata["classification_cache_hit"] != false {
		t.Error("expected no cache hits with caching disabled")
	}
}

func TestEngine_Conversational(t *testing.T) {
	e := testEngine(nil, nil)

	resp := e.Respond(context.Background(), "halo")

	if resp.Mode != model.ModeConversational {
		t.Fatalf("expected conversational mode, got %s", resp.Mode)
	}
	if resp.Intent != model.IntentSmalltalk {
		t.Errorf("expected smalltalk, got %s", resp.Intent)
	}
	if resp.Source != model.SourceTemplate {
		t.Errorf("expected template source, got %s", resp.Source)
	}
}

func TestEngine_KnowledgeMissEscalates(t *testing.T) {
	// knowledge intent with confidence but no extractor: fallback, not error
	e := testEngine(nil, nil)

	resp := e.Respond(context.Background(), "kapan jadwal kuliah dan ujian uts")

	if resp.Mode != model.ModeFallback {
		t.Errorf("expected fallback after knowledge miss, got %s", resp.Mode)
	}
	if resp.Source != model.SourceFallback {
		t.Errorf("expected fallback source, got %s", resp.Source)
	}
	// classification verdict is preserved on the response
	if resp.Intent != model.IntentSchedule {
		t.Errorf("expected schedule intent retained, got %s", resp.Intent)
	}
}

func TestEngine_PanicRecovery(t *testing.T) {
	e := testEngine(&spyClassifier{panics: true}, nil)

	resp := e.Respond(context.Background(), "kapan jadwal kuliah")

	if resp.Message != respond.EmergencyMessage {
		t.Errorf("expected emergency message, got %q", resp.Message)
	}
	if resp.Source != model.SourceError || resp.Mode != model.ModeFallback {
		t.Errorf("unexpected mode/source: %s/%s", resp.Mode, resp.Source)
	}
	// the intent stays inside the closed set; source carries the failure
	if resp.Intent != model.IntentUnknown {
		t.Errorf("expected unknown intent, got %s", resp.Intent)
	}
	if resp.Confidence != 0 {
		t.Errorf("expected zero confidence, got %f", resp.Confidence)
	}
	if resp.ProcessingTimeMS < 0 {
		t.Errorf("expected processing time set, got %f", resp.ProcessingTimeMS)
	}
}

func TestEngine_FusedClassification(t *testing.T) {
	classifier := &spyClassifier{scores: map[string]float64{
		string(model.IntentSchedule): 0.7,
	}}
	e := testEngine(classifier, nil)

	resp := e.Respond(context.Background(), "kapan jadwal kuliah besok")

	if resp.Metadata["classification_source"] != string(model.SourceFused) {
		t.Errorf("expected fused classification, got %v", resp.Metadata["classification_source"])
	}
}

func TestEngine_Batch(t *testing.T) {
	e := testEngine(nil, nil)

	texts := []string{"halo", "kata tanpa arti", "kapan jadwal kuliah dan ujian uts"}
	responses := e.Batch(context.Background(), texts)

	if len(responses) != len(texts) {
		t.Fatalf("expected %d responses, got %d", len(texts), len(responses))
	}
	if responses[0].Mode != model.ModeConversational {
		t.Errorf("slot 0: expected conversational, got %s", responses[0].Mode)
	}
	if responses[1].Intent != model.IntentUnknown {
		t.Errorf("slot 1: expected unknown, got %s", responses[1].Intent)
	}
	if responses[2].Intent != model.IntentSchedule {
		t.Errorf("slot 2: expected schedule, got %s", responses[2].Intent)
	}
}

func TestEngine_BatchLarge(t *testing.T) {
	// well above workers*queue slots with the default 4 workers
	e := testEngine(nil, nil)

	texts := make([]string, 40)
	for i := range texts {
		texts[i] = "halo"
	}

	done := make(chan []*model.HybridResponse, 1)
	go func() {
		done <- e.Batch(context.Background(), texts)
	}()

	var responses []*model.HybridResponse
	select {
	case responses = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("batch did not complete")
	}

	if len(responses) != len(texts) {
		t.Fatalf("expected %d responses, got %d", len(texts), len(responses))
	}
	for i, resp := range responses {
		if resp.Mode != model.ModeConversational {
			t.Errorf("slot %d: expected conversational, got %s", i, resp.Mode)
		}
	}
}

func TestEngine_Stats(t *testing.T) {
	e := testEngine(nil, nil)
	e.Respond(context.Background(), "halo")
	e.Respond(context.Background(), "halo")

	stats := e.Stats()
	if stats.KnowledgeIntents != 4 || stats.Conversational != 1 {
		t.Errorf("unexpected partition sizes: %+v", stats)
	}
	if stats.Knowledge == nil || stats.Knowledge.TotalIntents == 0 {
		t.Error("expected knowledge stats from the built-in store")
	}
	if stats.TotalKeywords == 0 {
		t.Error("expected keyword count")
	}

	e.ClearCaches()
	after := e.Stats()
	if after.ClassificationCache.Size != 0 || after.AnswerCache.Size != 0 {
		t.Error("expected empty caches after clear")
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Capability.Provider = "bert"

	if _, err := New(cfg); err == nil {
		t.Error("expected error for unknown capability provider")
	}
}

func TestNew_Defaults(t *testing.T) {
	e, err := New(model.DefaultConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	// no provider configured: keyword-only, still answers
	resp := e.Respond(context.Background(), "halo")
	if resp == nil || resp.Message == "" {
		t.Fatal("expected a well-formed response")
	}
}

package cache

import (
	"testing"
	"time"

	"github.com/kampuschat/kampuschat/internal/model"
)

func TestClassificationCache_Gate(t *testing.T) {
	c := NewClassificationCache(10, time.Minute, 0.5)

	low := model.ClassificationResult{Intent: model.IntentSchedule, Confidence: 0.5, Source: model.SourceKeyword}
	if c.Set("jadwal kuliah", low) {
		t.Error("expected result at the gate rejected")
	}
	if _, ok := c.Get("jadwal kuliah"); ok {
		t.Error("expected miss for rejected result")
	}

	high := model.ClassificationResult{Intent: model.IntentSchedule, Confidence: 0.7, Source: model.SourceFused}
	if !c.Set("jadwal kuliah", high) {
		t.Error("expected result above the gate stored")
	}
	got, ok := c.Get("jadwal kuliah")
	if !ok {
		t.Fatal("expected hit for stored result")
	}
	if got.Intent != model.IntentSchedule || got.Confidence != 0.7 {
		t.Errorf("unexpected cached result: %+v", got)
	}
}

func TestClassificationCache_KeyNormalization(t *testing.T) {
	c := NewClassificationCache(10, time.Minute, 0.5)

	result := model.ClassificationResult{Intent: model.IntentPayment, Confidence: 0.8, Source: model.SourceFused}
	c.Set("  Cara BAYAR ukt  ", result)

	if _, ok := c.Get("cara bayar ukt"); !ok {
		t.Error("expected lookup to ignore case and surrounding whitespace")
	}
}

func TestAnswerCache_Gate(t *testing.T) {
	c := NewAnswerCache(10, time.Minute, 0.3)

	low := model.ExtractionResult{Answer: "senin", Confidence: 0.2}
	if c.Set("kapan kuliah?", "ctx", low) {
		t.Error("expected low-confidence extraction rejected")
	}

	high := model.ExtractionResult{Answer: "senin", Confidence: 0.6}
	if !c.Set("kapan kuliah?", "ctx", high) {
		t.Error("expected extraction above the gate stored")
	}
	got, ok := c.Get("kapan kuliah?", "ctx")
	if !ok {
		t.Fatal("expected hit for stored extraction")
	}
	if got.Answer != "senin" {
		t.Errorf("unexpected cached answer %q", got.Answer)
	}
}

func TestAnswerCache_KeyIncludesContext(t *testing.T) {
	c := NewAnswerCache(10, time.Minute, 0.3)

	c.Set("kapan kuliah?", "ctx-a", model.ExtractionResult{Answer: "senin", Confidence: 0.6})

	if _, ok := c.Get("kapan kuliah?", "ctx-b"); ok {
		t.Error("expected miss for same question under different context")
	}
}

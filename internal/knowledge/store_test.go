package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kampuschat/kampuschat/internal/model"
)

func testStore() *Store {
	return NewStore([]Record{
		{Intent: model.IntentSchedule, Category: "akademik", Text: "jadwal kuliah tersedia di portal"},
		{Intent: model.IntentCampusInfo, Category: "akademik", Text: "informasi beasiswa di kemahasiswaan"},
		{Intent: model.IntentPayment, Category: "layanan", Text: "ukt dibayar lewat virtual account"},
		{Intent: model.IntentPassword, Category: "layanan", Text: "reset password di portal akademik"},
	})
}

func TestStore_Context(t *testing.T) {
	s := testStore()

	ctx, ok := s.Context(model.IntentSchedule)
	if !ok || ctx == "" {
		t.Fatal("expected context for schedule intent")
	}

	if _, ok := s.Context(model.IntentSmalltalk); ok {
		t.Error("expected no context for smalltalk intent")
	}
	if _, ok := s.Context(model.IntentUnknown); ok {
		t.Error("expected no context for unknown intent")
	}
}

func TestStore_Category(t *testing.T) {
	s := testStore()

	cat, ok := s.Category(model.IntentPayment)
	if !ok || cat != "layanan" {
		t.Errorf("expected layanan category, got %q (%v)", cat, ok)
	}
}

func TestStore_Related(t *testing.T) {
	s := testStore()

	related := s.Related(model.IntentSchedule, 3)
	if len(related) != 1 {
		t.Fatalf("expected 1 related context, got %d", len(related))
	}
	if related[0].Intent != model.IntentCampusInfo {
		t.Errorf("expected campus-info sibling, got %s", related[0].Intent)
	}

	// the intent itself is never in its related set
	for _, r := range s.Related(model.IntentPayment, 3) {
		if r.Intent == model.IntentPayment {
			t.Error("related set contains the intent itself")
		}
	}
}

func TestStore_RelatedLimit(t *testing.T) {
	s := NewStore([]Record{
		{Intent: model.IntentSchedule, Category: "akademik", Text: "a"},
		{Intent: "topik_satu", Category: "akademik", Text: "b"},
		{Intent: "topik_dua", Category: "akademik", Text: "c"},
		{Intent: "topik_tiga", Category: "akademik", Text: "d"},
	})

	related := s.Related(model.IntentSchedule, 2)
	if len(related) != 2 {
		t.Fatalf("expected limit respected, got %d", len(related))
	}
	// load order preserved
	if related[0].Intent != "topik_satu" || related[1].Intent != "topik_dua" {
		t.Errorf("expected load order, got %v", related)
	}

	if got := s.Related(model.IntentSchedule, 0); got != nil {
		t.Errorf("expected nil for zero limit, got %v", got)
	}
	if got := s.Related(model.IntentUnknown, 3); got != nil {
		t.Errorf("expected nil for intent without category, got %v", got)
	}
}

func TestStore_Stats(t *testing.T) {
	stats := testStore().Stats()

	if stats.TotalIntents != 4 {
		t.Errorf("expected 4 intents, got %d", stats.TotalIntents)
	}
	if stats.Categories["akademik"] != 2 || stats.Categories["layanan"] != 2 {
		t.Errorf("unexpected category counts: %v", stats.Categories)
	}
	if stats.TotalChars == 0 || stats.AvgContextLen == 0 {
		t.Errorf("expected non-zero char counts, got %+v", stats)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge.yaml")
	content := `contexts:
  - intent: jadwal_kuliah
    category: akademik
    text: Jadwal kuliah tersedia di portal mahasiswa.
  - intent: pembayaran
    category: layanan
    text: UKT dibayar melalui virtual account.
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	ctx, ok := s.Context(model.IntentSchedule)
	if !ok || ctx != "Jadwal kuliah tersedia di portal mahasiswa." {
		t.Errorf("unexpected schedule context: %q (%v)", ctx, ok)
	}
	if s.Stats().TotalIntents != 2 {
		t.Errorf("expected 2 records, got %d", s.Stats().TotalIntents)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(empty, []byte("contexts: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(empty); err == nil {
		t.Error("expected error for knowledge base without contexts")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("contexts: {not a list"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestDefaultStore(t *testing.T) {
	s := DefaultStore()

	for _, intent := range []model.Intent{
		model.IntentSchedule, model.IntentPayment,
		model.IntentPassword, model.IntentCampusInfo,
	} {
		if _, ok := s.Context(intent); !ok {
			t.Errorf("expected built-in context for %s", intent)
		}
	}
	if _, ok := s.Context(model.IntentSmalltalk); ok {
		t.Error("smalltalk should have no knowledge context")
	}
}

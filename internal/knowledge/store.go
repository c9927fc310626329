package knowledge

import (
	"fmt"
	"os"

	"github.com/kampuschat/kampuschat/internal/model"
	"gopkg.in/yaml.v3"
)

// Record is one knowledge passage: the context an extractor searches for
// answers to queries classified under Intent.
type Record struct {
	Intent   model.Intent `yaml:"intent"`
	Category string       `yaml:"category"`
	Text     string       `yaml:"text"`
}

// Related pairs an intent with its context text.
type Related struct {
	Intent model.Intent
	Text   string
}

// Stats summarises the loaded knowledge content.
type Stats struct {
	TotalIntents  int            `json:"total_intents"`
	Categories    map[string]int `json:"categories"`
	TotalChars    int            `json:"total_characters"`
	AvgContextLen int            `json:"average_context_length"`
}

// Store maps intents to contexts and categories. It never mutates after
// construction, so concurrent reads need no locking.
type Store struct {
	records []Record
	byKey   map[model.Intent]Record
}

type knowledgeFile struct {
	Contexts []Record `yaml:"contexts"`
}

// Load reads a YAML knowledge base. Record order in the file is preserved:
// related-context lookups return results in load order.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	var file knowledgeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}
	if len(file.Contexts) == 0 {
		return nil, fmt.Errorf("knowledge base %s contains no contexts", path)
	}

	return NewStore(file.Contexts), nil
}

// NewStore builds a store from records, preserving their order.
func NewStore(records []Record) *Store {
	byKey := make(map[model.Intent]Record, len(records))
	for _, r := range records {
		if _, dup := byKey[r.Intent]; !dup {
			byKey[r.Intent] = r
		}
	}
	return &Store{records: records, byKey: byKey}
}

// Context returns the passage for an intent.
func (s *Store) Context(intent model.Intent) (string, bool) {
	r, ok := s.byKey[intent]
	if !ok {
		return "", false
	}
	return r.Text, true
}

// Category returns the category for an intent.
func (s *Store) Category(intent model.Intent) (string, bool) {
	r, ok := s.byKey[intent]
	if !ok {
		return "", false
	}
	return r.Category, true
}

// Related returns up to limit contexts sharing the intent's category,
// excluding the intent itself, in load order.
func (s *Store) Related(intent model.Intent, limit int) []Related {
	category, ok := s.Category(intent)
	if !ok || limit <= 0 {
		return nil
	}

	var related []Related
	for _, r := range s.records {
		if r.Intent == intent || r.Category != category || r.Text == "" {
			continue
		}
		related = append(related, Related{Intent: r.Intent, Text: r.Text})
		if len(related) == limit {
			break
		}
	}
	return related
}

// Stats summarises the store contents.
func (s *Store) Stats() Stats {
	categories := make(map[string]int)
	totalChars := 0
	for _, r := range s.records {
		categories[r.Category]++
		totalChars += len(r.Text)
	}

	avg := 0
	if len(s.records) > 0 {
		avg = totalChars / len(s.records)
	}
	return Stats{
		TotalIntents:  len(s.records),
		Categories:    categories,
		TotalChars:    totalChars,
		AvgContextLen: avg,
	}
}

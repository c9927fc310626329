package model

import (
	"strconv"
	"strings"
)

// Intent is the closed-set category a query is classified into.
type Intent string

const (
	IntentSchedule   Intent = "jadwal_kuliah"  // Schedule and class information
	IntentPayment    Intent = "pembayaran"     // Payment and tuition inquiries
	IntentPassword   Intent = "reset_password" // Account and authentication help
	IntentCampusInfo Intent = "faq_informasi"  // General campus information
	IntentSmalltalk  Intent = "smalltalk"      // Casual conversation and greetings
	IntentUnknown    Intent = "unknown"        // Unrecognized intents
)

// Intents is the configured intent set in label order. The classifier's
// positional labels (LABEL_0..LABEL_n) index into this slice.
var Intents = []Intent{
	IntentSchedule,
	IntentPayment,
	IntentPassword,
	IntentCampusInfo,
	IntentSmalltalk,
	IntentUnknown,
}

// KnowledgeIntents are resolved via extraction over knowledge contexts.
var KnowledgeIntents = map[Intent]bool{
	IntentSchedule:   true,
	IntentPayment:    true,
	IntentPassword:   true,
	IntentCampusInfo: true,
}

// ConversationalIntents are resolved via response templates.
var ConversationalIntents = map[Intent]bool{
	IntentSmalltalk: true,
}

// Descriptions maps each intent to a short human-readable description.
var Descriptions = map[Intent]string{
	IntentSchedule:   "Schedule and class information queries - academic timetables, course schedules, exam dates",
	IntentPayment:    "Payment and tuition related questions - UKT payments, fees, billing information",
	IntentPassword:   "Account and authentication issues - password resets, login problems, access recovery",
	IntentCampusInfo: "General campus information requests - scholarships, graduation, academic procedures",
	IntentSmalltalk:  "Casual conversation and greetings - hello messages, thank you, general politeness",
	IntentUnknown:    "Unrecognized or ambiguous intents that don't fit other categories",
}

// Valid reports whether the intent belongs to the configured set.
func (i Intent) Valid() bool {
	for _, known := range Intents {
		if i == known {
			return true
		}
	}
	return false
}

// IsKnowledge reports whether the intent resolves via knowledge extraction.
func (i Intent) IsKnowledge() bool {
	return KnowledgeIntents[i]
}

// IsConversational reports whether the intent resolves via templates.
func (i Intent) IsConversational() bool {
	return ConversationalIntents[i]
}

// MapLabel resolves an external classifier label to an Intent.
// Labels match by name first, then by LABEL_<index> position into the
// configured set. Unmapped labels resolve to IntentUnknown, never an error.
func MapLabel(label string) Intent {
	if candidate := Intent(strings.ToLower(strings.TrimSpace(label))); candidate.Valid() {
		return candidate
	}

	if rest, ok := strings.CutPrefix(label, "LABEL_"); ok {
		if idx, err := strconv.Atoi(rest); err == nil && idx >= 0 && idx < len(Intents) {
			return Intents[idx]
		}
	}

	return IntentUnknown
}

package nlp

import (
	"strings"

	"advisordesk/models"
)

// Topic taxonomy: closed mapping from canonical labels to accepted
// phrasings. A topic is only ever stored on a session if it matched here.
var topics = map[string][]string{
	"KYC/Onboarding":          {"kyc", "onboarding", "verification", "documents", "identity"},
	"SIP/Mandates":            {"sip", "mandate", "systematic", "recurring", "auto-debit"},
	"Statements/Tax Docs":     {"statement", "tax", "form 16", "capital gains", "annual statement"},
	"Withdrawals & Timelines": {"withdraw", "redeem", "timeline", "when will i get", "payout"},
	"Account Changes/Nominee": {"change", "nominee", "bank details", "update", "modify"},
	"Retirement Planning":     {"retirement", "pension", "retire"},
}

// topicOrder fixes iteration order so matching is deterministic.
var topicOrder = []string{
	"KYC/Onboarding",
	"SIP/Mandates",
	"Statements/Tax Docs",
	"Withdrawals & Timelines",
	"Account Changes/Nominee",
	"Retirement Planning",
}

// fuzzyDistance is the maximum edit distance for a single word to still
// count as a keyword match (tolerates voice-transcription slips).
const fuzzyDistance = 1

// TopicLabels returns the canonical labels in stable order, for prompts.
func TopicLabels() []string {
	out := make([]string, len(topicOrder))
	copy(out, topicOrder)
	return out
}

// MatchTopic resolves a free-text phrase against the taxonomy. Exact
// substring matches win; otherwise single words within the fuzzy edit
// distance of a keyword match. Returns ReasonUnknownTopic when nothing
// in the taxonomy fits.
func MatchTopic(phrase string) (*models.Topic, error) {
	lowered := strings.ToLower(strings.TrimSpace(phrase))
	if lowered == "" {
		return nil, NewExtractError(ReasonUnknownTopic, "empty topic phrase")
	}

	for _, label := range topicOrder {
		for _, kw := range topics[label] {
			if strings.Contains(lowered, kw) {
				return &models.Topic{Label: label, Phrase: phrase}, nil
			}
		}
	}

	// Fuzzy pass: compare individual words against single-word keywords.
	words := strings.FieldsFunc(lowered, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '?' || r == '!'
	})
	for _, label := range topicOrder {
		for _, kw := range topics[label] {
			if strings.ContainsRune(kw, ' ') {
				continue
			}
			for _, w := range words {
				if editDistance(w, kw) <= fuzzyDistance && len(w) > 2 {
					return &models.Topic{Label: label, Phrase: phrase}, nil
				}
			}
		}
	}

	return nil, NewExtractError(ReasonUnknownTopic, "phrase did not match any advisory topic")
}

// editDistance is the Levenshtein distance between two short words.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

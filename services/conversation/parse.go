package conversation

import (
	"regexp"
	"strings"
)

// codeTokenRe matches booking-code-shaped tokens: letters, an optional
// separator, then at least three digits ("NL-A123", "nlp760", "ABC123").
var codeTokenRe = regexp.MustCompile(`\b[a-zA-Z]+[-. ]?[a-zA-Z]*\d{3,}\b`)

// findCodeToken pulls a booking-code-shaped token out of an utterance
// that also carries the intent, e.g. "reschedule NL-A123".
func findCodeToken(text string) string {
	return codeTokenRe.FindString(text)
}

var pleasantryWords = map[string]bool{
	"hello": true, "hi": true, "hey": true, "hiya": true, "namaste": true,
	"greetings": true, "good": true, "morning": true, "afternoon": true,
	"evening": true, "day": true, "there": true, "thanks": true,
	"thank": true, "you": true,
}

// isPleasantry reports whether a turn is a greeting or courtesy with no
// actionable content ("hello", "hi there", "good morning").
func isPleasantry(text string) bool {
	words := tokens(text)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !pleasantryWords[w] {
			return false
		}
	}
	return true
}

// parseSlotChoice reads a reply to a two-slot offer. none is true for a
// "neither works" reply; idx is 0-based. ok is false when the reply is
// ambiguous or names a slot that wasn't offered.
func parseSlotChoice(text string, offered int) (idx int, none bool, ok bool) {
	for _, w := range tokens(text) {
		switch w {
		case "none", "neither", "nothing":
			return 0, true, true
		case "first", "one", "1":
			if offered >= 1 {
				return 0, false, true
			}
			return 0, false, false
		case "second", "two", "2":
			if offered >= 2 {
				return 1, false, true
			}
			return 0, false, false
		case "no", "nope":
			return 0, true, true
		}
	}
	return 0, false, false
}

// parseYesNo reads a confirmation reply. ok is false when the reply is
// ambiguous; ambiguity counts against the retry limit at the call site.
func parseYesNo(text string) (yes bool, ok bool) {
	words := tokens(text)
	for _, w := range words {
		switch w {
		case "no", "nope", "nah", "dont", "wait", "change", "different":
			return false, true
		}
	}
	for _, w := range words {
		switch w {
		case "yes", "yeah", "yep", "yup", "sure", "ok", "okay", "confirm", "confirmed", "correct", "right", "please", "book", "go":
			return true, true
		}
	}
	return false, false
}

// tokens splits on whitespace after stripping punctuation so that
// "Yes, please!" and "yes please" read the same.
func tokens(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', '.', '!', '?', ';', ':', '\'', '"':
			return -1
		}
		return r
	}, strings.ToLower(text))
	return strings.Fields(cleaned)
}

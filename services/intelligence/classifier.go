package intelligence

import (
	"context"
	"strings"
	"time"

	"advisordesk/models"
	"advisordesk/utils"

	"go.uber.org/zap"
)

// Matcher is one rule tier: an intent label and the phrases that vote
// for it. Matchers run in order; cancel sits before reschedule so
// "cancel"/"abort"/"remove" are never read as a reschedule.
type Matcher struct {
	Label   models.IntentLabel
	Phrases []string
}

func defaultMatchers() []Matcher {
	return []Matcher{
		{models.IntentCancel, []string{"cancel", "abort", "delete", "remove"}},
		{models.IntentReschedule, []string{"reschedule", "postpone", "move my", "different time", "change booking", "change my booking"}},
		{models.IntentBook, []string{"book", "schedule", "appointment", "slot", "meeting", "advisor call"}},
		{models.IntentPrepare, []string{"what to bring", "prepare", "documents needed", "what do i need"}},
		{models.IntentCheckAvailability, []string{"when available", "free slots", "open times", "availability", "when are you free"}},
	}
}

// FallbackClassifier is the external LLM collaborator consulted when no
// rule matches with enough confidence.
type FallbackClassifier interface {
	ClassifyIntent(ctx context.Context, utterance string) (models.IntentLabel, error)
}

// Classifier resolves free text to an intent: ordered keyword tiers first,
// then the LLM fallback, then unknown. It always returns a classification;
// external failures are degraded, never propagated.
type Classifier struct {
	matchers        []Matcher
	minConfidence   float64
	fallback        FallbackClassifier
	fallbackTimeout time.Duration
}

func NewClassifier(minConfidence float64, fallback FallbackClassifier) *Classifier {
	return &Classifier{
		matchers:        defaultMatchers(),
		minConfidence:   minConfidence,
		fallback:        fallback,
		fallbackTimeout: 5 * time.Second,
	}
}

// Classify maps one utterance to an Intent with a confidence signal.
func (c *Classifier) Classify(ctx context.Context, utterance string) models.Intent {
	lowered := strings.ToLower(strings.TrimSpace(utterance))
	if lowered == "" {
		return models.Intent{Label: models.IntentUnknown, Utterance: utterance}
	}

	best := models.Intent{Label: models.IntentUnknown, Utterance: utterance}
	bestScore := 0
	for _, m := range c.matchers {
		score := 0
		for _, phrase := range m.Phrases {
			if strings.Contains(lowered, phrase) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = models.Intent{Label: m.Label, Utterance: utterance, Confidence: scoreConfidence(score)}
		}
	}

	if bestScore > 0 && best.Confidence >= c.minConfidence {
		return best
	}

	if c.fallback != nil {
		fbCtx, cancel := context.WithTimeout(ctx, c.fallbackTimeout)
		defer cancel()
		label, err := c.fallback.ClassifyIntent(fbCtx, utterance)
		if err != nil {
			utils.GetLogger().Warn("intent fallback failed, treating as unknown",
				zap.String("utterance", utterance), zap.Error(err))
			return models.Intent{Label: models.IntentUnknown, Utterance: utterance}
		}
		return models.Intent{Label: label, Utterance: utterance, Confidence: 0.5}
	}

	return models.Intent{Label: models.IntentUnknown, Utterance: utterance}
}

// scoreConfidence maps keyword hit counts to a rough confidence signal.
func scoreConfidence(score int) float64 {
	switch {
	case score >= 3:
		return 0.9
	case score == 2:
		return 0.7
	case score == 1:
		return 0.4
	default:
		return 0
	}
}

// ParseLabel validates an externally produced label string.
func ParseLabel(s string) (models.IntentLabel, bool) {
	switch models.IntentLabel(strings.ToLower(strings.TrimSpace(s))) {
	case models.IntentBook:
		return models.IntentBook, true
	case models.IntentReschedule:
		return models.IntentReschedule, true
	case models.IntentCancel:
		return models.IntentCancel, true
	case models.IntentPrepare:
		return models.IntentPrepare, true
	case models.IntentCheckAvailability:
		return models.IntentCheckAvailability, true
	default:
		return models.IntentUnknown, false
	}
}

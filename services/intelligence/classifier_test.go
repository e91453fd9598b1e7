package intelligence

import (
	"context"
	"errors"
	"testing"

	"advisordesk/models"

	"github.com/stretchr/testify/assert"
)

type stubFallback struct {
	label models.IntentLabel
	err   error
	calls int
}

func (s *stubFallback) ClassifyIntent(ctx context.Context, utterance string) (models.IntentLabel, error) {
	s.calls++
	return s.label, s.err
}

func TestClassifyKeywordTiers(t *testing.T) {
	c := NewClassifier(0.4, nil)
	ctx := context.Background()

	tests := []struct {
		utterance string
		want      models.IntentLabel
	}{
		{"I want to book an appointment", models.IntentBook},
		{"can I schedule a slot with an advisor", models.IntentBook},
		{"reschedule my booking please", models.IntentReschedule},
		{"I need a different time", models.IntentReschedule},
		{"cancel my appointment", models.IntentCancel},
		{"please remove my booking", models.IntentCancel},
		{"what documents needed for the call", models.IntentPrepare},
		{"what do i need to bring", models.IntentPrepare},
		{"when are you free this week", models.IntentCheckAvailability},
		{"show me the open times", models.IntentCheckAvailability},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			got := c.Classify(ctx, tt.utterance)
			assert.Equal(t, tt.want, got.Label)
			assert.GreaterOrEqual(t, got.Confidence, 0.4)
		})
	}
}

// On a tie, cancel wins over book: it runs first.
func TestClassifyCancelWinsTie(t *testing.T) {
	c := NewClassifier(0.4, nil)
	got := c.Classify(context.Background(), "cancel my booking")
	assert.Equal(t, models.IntentCancel, got.Label)
}

func TestClassifyConfidenceScaling(t *testing.T) {
	c := NewClassifier(0.4, nil)
	ctx := context.Background()

	one := c.Classify(ctx, "I'd like a meeting")
	assert.InDelta(t, 0.4, one.Confidence, 0.001)

	two := c.Classify(ctx, "book a meeting")
	assert.InDelta(t, 0.7, two.Confidence, 0.001)

	three := c.Classify(ctx, "book a slot for a meeting")
	assert.InDelta(t, 0.9, three.Confidence, 0.001)
}

func TestClassifyFallback(t *testing.T) {
	t.Run("consulted when no rule matches", func(t *testing.T) {
		fb := &stubFallback{label: models.IntentBook}
		c := NewClassifier(0.4, fb)
		got := c.Classify(context.Background(), "I'd love some time with someone who knows mutual funds")
		assert.Equal(t, models.IntentBook, got.Label)
		assert.Equal(t, 1, fb.calls)
	})

	t.Run("not consulted when a rule matches", func(t *testing.T) {
		fb := &stubFallback{label: models.IntentCancel}
		c := NewClassifier(0.4, fb)
		got := c.Classify(context.Background(), "book an appointment")
		assert.Equal(t, models.IntentBook, got.Label)
		assert.Equal(t, 0, fb.calls)
	})

	t.Run("errors degrade to unknown", func(t *testing.T) {
		fb := &stubFallback{err: errors.New("quota exceeded")}
		c := NewClassifier(0.4, fb)
		got := c.Classify(context.Background(), "mumble mumble")
		assert.Equal(t, models.IntentUnknown, got.Label)
	})

	t.Run("absent fallback yields unknown", func(t *testing.T) {
		c := NewClassifier(0.4, nil)
		got := c.Classify(context.Background(), "mumble mumble")
		assert.Equal(t, models.IntentUnknown, got.Label)
	})
}

func TestClassifyEmptyUtterance(t *testing.T) {
	fb := &stubFallback{label: models.IntentBook}
	c := NewClassifier(0.4, fb)
	got := c.Classify(context.Background(), "   ")
	assert.Equal(t, models.IntentUnknown, got.Label)
	assert.Equal(t, 0, fb.calls)
}

func TestParseLabel(t *testing.T) {
	for _, s := range []string{"book", " BOOK ", "Cancel", "reschedule", "prepare", "check_availability"} {
		_, ok := ParseLabel(s)
		assert.True(t, ok, "label %q should parse", s)
	}
	for _, s := range []string{"", "unknown", "booking please"} {
		_, ok := ParseLabel(s)
		assert.False(t, ok, "label %q should not parse", s)
	}
}

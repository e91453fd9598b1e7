package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 5*3600+1800)

// ref is Monday 2 Feb 2026, 9:00 IST.
func refTime() time.Time {
	return time.Date(2026, time.February, 2, 9, 0, 0, 0, ist)
}

func TestExtractDateTime(t *testing.T) {
	ref := refTime()

	tests := []struct {
		name    string
		text    string
		wantDay time.Time
		wantMin int
		hasTime bool
	}{
		{
			name:    "weekday with clock time",
			text:    "Friday at 10am",
			wantDay: time.Date(2026, time.February, 6, 0, 0, 0, 0, ist),
			wantMin: 10 * 60,
			hasTime: true,
		},
		{
			name:    "weekday only",
			text:    "friday works",
			wantDay: time.Date(2026, time.February, 6, 0, 0, 0, 0, ist),
			wantMin: -1,
			hasTime: false,
		},
		{
			name:    "day month with daypart",
			text:    "4 feb afternoon",
			wantDay: time.Date(2026, time.February, 4, 0, 0, 0, 0, ist),
			wantMin: 14 * 60,
			hasTime: true,
		},
		{
			name:    "month day ordinal",
			text:    "feb 4th",
			wantDay: time.Date(2026, time.February, 4, 0, 0, 0, 0, ist),
			wantMin: -1,
			hasTime: false,
		},
		{
			name:    "tomorrow with minutes",
			text:    "tomorrow at 2:30pm",
			wantDay: time.Date(2026, time.February, 3, 0, 0, 0, 0, ist),
			wantMin: 14*60 + 30,
			hasTime: true,
		},
		{
			name:    "same weekday later today",
			text:    "monday 10am",
			wantDay: time.Date(2026, time.February, 2, 0, 0, 0, 0, ist),
			wantMin: 10 * 60,
			hasTime: true,
		},
		{
			name:    "same weekday no time rolls a week",
			text:    "monday",
			wantDay: time.Date(2026, time.February, 9, 0, 0, 0, 0, ist),
			wantMin: -1,
			hasTime: false,
		},
		{
			name:    "bare future time lands today",
			text:    "10am",
			wantDay: time.Date(2026, time.February, 2, 0, 0, 0, 0, ist),
			wantMin: 10 * 60,
			hasTime: true,
		},
		{
			name:    "bare elapsed time lands tomorrow",
			text:    "8am",
			wantDay: time.Date(2026, time.February, 3, 0, 0, 0, 0, ist),
			wantMin: 8 * 60,
			hasTime: true,
		},
		{
			name:    "at with bare hour",
			text:    "friday at 16",
			wantDay: time.Date(2026, time.February, 6, 0, 0, 0, 0, ist),
			wantMin: 16 * 60,
			hasTime: true,
		},
		{
			name:    "noon daypart",
			text:    "wednesday around noon",
			wantDay: time.Date(2026, time.February, 4, 0, 0, 0, 0, ist),
			wantMin: 12 * 60,
			hasTime: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pref, err := ExtractDateTime(tt.text, ref, 14)
			require.NoError(t, err)
			assert.True(t, pref.Day.Equal(tt.wantDay), "day = %v, want %v", pref.Day, tt.wantDay)
			assert.Equal(t, tt.hasTime, pref.HasTime)
			if tt.hasTime {
				assert.Equal(t, tt.wantMin, pref.Minutes)
			}
		})
	}
}

func TestExtractDateTimeRejections(t *testing.T) {
	ref := refTime()

	tests := []struct {
		name       string
		text       string
		wantReason string
	}{
		{"no date or time at all", "something about my portfolio", ReasonUnparseable},
		{"empty input", "   ", ReasonUnparseable},
		{"document number is not a time", "it's about form 16", ReasonUnparseable},
		{"count is not a time", "i have 2 questions about sip", ReasonUnparseable},
		{"time earlier today", "today at 8am", ReasonPastTime},
		{"day beyond horizon", "28 february", ReasonBeyondHorizon},
		{"far future date", "1 june", ReasonBeyondHorizon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractDateTime(tt.text, ref, 14)
			require.Error(t, err)
			assert.Equal(t, tt.wantReason, Reason(err))
		})
	}
}

// "afternoon" must not resolve through its "noon" suffix.
func TestExtractDateTimeAfternoonBeatsNoon(t *testing.T) {
	pref, err := ExtractDateTime("tuesday afternoon", refTime(), 14)
	require.NoError(t, err)
	assert.Equal(t, 14*60, pref.Minutes)
}

func TestTimePreferenceFormatRoundTrip(t *testing.T) {
	ref := refTime()
	for _, text := range []string{"friday at 10am", "4 feb afternoon", "tomorrow 3pm"} {
		pref, err := ExtractDateTime(text, ref, 14)
		require.NoError(t, err)
		again, err := ExtractDateTime(pref.Format(), ref, 14)
		require.NoError(t, err, "formatted phrase %q should re-parse", pref.Format())
		assert.True(t, again.Instant().Equal(pref.Instant()),
			"round-trip of %q changed instant: %v vs %v", text, again.Instant(), pref.Instant())
	}
}

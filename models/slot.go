package models

import (
	"fmt"
	"time"
)

// Slot availability statuses.
const (
	SlotFree = "free"
	SlotBusy = "busy"
)

// CalendarSlot represents a candidate appointment time. Once offered
// within a session it is immutable; a later turn re-queries the source
// for fresh slots instead of mutating these.
type CalendarSlot struct {
	ID          string    `json:"id"`
	Start       time.Time `json:"start"`
	DurationMin int       `json:"durationMin"`
	Status      string    `json:"status"`
}

// End returns the slot's end instant.
func (s CalendarSlot) End() time.Time {
	return s.Start.Add(time.Duration(s.DurationMin) * time.Minute)
}

// Label renders the slot for prompts, e.g. "Tuesday, Feb 10 at 2:00 PM IST".
func (s CalendarSlot) Label(tzLabel string) string {
	return fmt.Sprintf("%s at %s %s",
		s.Start.Format("Monday, Jan 2"),
		s.Start.Format("3:04 PM"),
		tzLabel,
	)
}

// SlotWindow is a half-open [From, To) query window for the availability source.
type SlotWindow struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// TimePreference is a normalized date/time-window request in the service
// timezone. Day is midnight of the requested date; Minutes is the requested
// time as minutes since midnight, meaningful only when HasTime is set.
type TimePreference struct {
	Day       time.Time `json:"day"`
	Minutes   int       `json:"minutes"`
	HasTime   bool      `json:"hasTime"`
	RawPhrase string    `json:"rawPhrase"`
}

// Instant resolves the preference to a concrete point in time. Preferences
// without an explicit time anchor to mid-morning so proximity ranking
// stays deterministic.
func (p TimePreference) Instant() time.Time {
	minutes := p.Minutes
	if !p.HasTime {
		minutes = 10 * 60
	}
	return p.Day.Add(time.Duration(minutes) * time.Minute)
}

// Window returns the full-day window around the preference.
func (p TimePreference) Window() SlotWindow {
	return SlotWindow{From: p.Day, To: p.Day.AddDate(0, 0, 1)}
}

// Format renders the preference in a phrase the datetime extractor itself
// accepts, so formatted preferences round-trip to the same instant.
func (p TimePreference) Format() string {
	if !p.HasTime {
		return p.Day.Format("2 January")
	}
	return p.Day.Format("2 January") + ", " + p.Instant().Format("3:04pm")
}

package models

import "time"

// SessionState is the conversation engine's current position in the dialogue.
type SessionState string

const (
	StateGreeting                   SessionState = "greeting"
	StateAwaitingIntent             SessionState = "awaiting_intent"
	StateAwaitingTopic              SessionState = "awaiting_topic"
	StateAwaitingBookingCode        SessionState = "awaiting_booking_code"
	StateAwaitingTimeRange          SessionState = "awaiting_time_range"
	StateAwaitingTimePreference     SessionState = "awaiting_time_preference"
	StateAwaitingNewTimePreference  SessionState = "awaiting_new_time_preference"
	StateAwaitingSlotChoice         SessionState = "awaiting_slot_choice"
	StateAwaitingConfirmation       SessionState = "awaiting_confirmation"
	StateAwaitingCancelConfirmation SessionState = "awaiting_cancel_confirmation"
	StateCompleted                  SessionState = "completed"
	StateCancelled                  SessionState = "cancelled"
	StateFailed                     SessionState = "failed"
)

// Terminal reports whether no further turns are accepted in this state.
func (s SessionState) Terminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFailed
}

// Session holds all dialogue context between turns. It is a value type:
// the engine takes a Session and returns the updated copy, so callers own
// persistence and serialization entirely.
type Session struct {
	ID                string          `json:"sessionId"`
	State             SessionState    `json:"state"`
	Intent            IntentLabel     `json:"intent,omitempty"`
	Topic             *Topic          `json:"topic,omitempty"`
	TimePreference    *TimePreference `json:"timePreference,omitempty"`
	OfferedSlots      []CalendarSlot  `json:"offeredSlots,omitempty"`
	ChosenSlot        *CalendarSlot   `json:"chosenSlot,omitempty"`
	BookingCode       string          `json:"bookingCode,omitempty"`
	TargetBookingCode string          `json:"targetBookingCode,omitempty"`
	Source            string          `json:"source"` // "voice" or "text"
	Retries           int             `json:"retries"`
	CreatedAt         time.Time       `json:"createdAt"`
}

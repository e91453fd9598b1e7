package models

import "time"

// Booking record statuses as written to the registry and downstream sinks.
const (
	BookingTentative   = "tentative"
	BookingRescheduled = "rescheduled"
	BookingCancelled   = "cancelled"
)

// BookingRecord is produced once, when a session completes. It is immutable
// after creation; downstream integrations receive it read-only.
type BookingRecord struct {
	Code     string `json:"code" bson:"code"`
	NormCode string `json:"-" bson:"normCode"` // lookup key, alphanumeric uppercase

	Topic     Topic        `json:"topic" bson:"topic"`
	Slot      CalendarSlot `json:"slot" bson:"slot"`
	Source    string       `json:"source" bson:"source"` // "voice" or "text"
	Status    string       `json:"status" bson:"status"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt" bson:"updatedAt"`
}

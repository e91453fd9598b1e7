package actions

import (
	"context"

	"advisordesk/models"
)

// Outcome statuses. Skipped is distinct from Failed: an unconfigured sink
// is not an integration failure, and neither ever affects whether the
// booking itself exists.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

type Outcome struct {
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// CalendarSink places, moves and removes tentative holds on the advisor
// calendar for completed bookings.
type CalendarSink interface {
	CreateHold(ctx context.Context, record *models.BookingRecord) Outcome
	MoveHold(ctx context.Context, record *models.BookingRecord) Outcome
	DeleteHold(ctx context.Context, record *models.BookingRecord) Outcome
}

// SheetSink maintains the pre-bookings log: one row per booking code.
type SheetSink interface {
	AppendRow(ctx context.Context, record *models.BookingRecord) Outcome
	UpdateRow(ctx context.Context, record *models.BookingRecord) Outcome
}

// EmailSink drafts (never sends) the advisor notification email.
type EmailSink interface {
	CreateDraft(ctx context.Context, record *models.BookingRecord, recipient string) Outcome
}

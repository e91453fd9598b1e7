package booking

import (
	"context"

	recordsRepo "advisordesk/database/repository/records"
	"advisordesk/models"
)

// RegistryService finalizes confirmed sessions into immutable booking
// records and resolves caller-supplied codes for reschedule/cancel flows.
// It is the sole boundary between the conversation core and the record
// registry.
type RegistryService interface {
	Finalize(ctx context.Context, session models.Session) (*models.BookingRecord, error)
	Reschedule(ctx context.Context, code string, slot models.CalendarSlot) (*models.BookingRecord, error)
	Cancel(ctx context.Context, code string) (*models.BookingRecord, error)
	Resolve(ctx context.Context, code string) (*models.BookingRecord, error)
}

// DefaultRegistryService implements RegistryService over a record repository.
type DefaultRegistryService struct {
	Records    recordsRepo.BookingRecordRepository
	CodePrefix string
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	recordsRepo "advisordesk/database/repository/records"
	"advisordesk/models"
	"advisordesk/utils"
)

// codeAttempts bounds collision re-rolls when minting a booking code.
const codeAttempts = 5

// Finalize turns a confirmed session into an immutable BookingRecord with
// a freshly minted code. It must only be called once the session's chosen
// slot is set and the caller has affirmed the confirmation prompt. The
// booking exists as soon as this returns; downstream sink failures never
// unwind it.
func (svc *DefaultRegistryService) Finalize(ctx context.Context, session models.Session) (*models.BookingRecord, error) {
	if session.ChosenSlot == nil {
		return nil, fmt.Errorf("cannot finalize session %s: no chosen slot", session.ID)
	}

	topic := models.Topic{Label: "Advisor Q&A"}
	if session.Topic != nil {
		topic = *session.Topic
	}

	code, err := svc.mintCode(ctx)
	if err != nil {
		return nil, err
	}

	record := models.BookingRecord{
		Code:      code,
		Topic:     topic,
		Slot:      *session.ChosenSlot,
		Source:    session.Source,
		Status:    models.BookingTentative,
		CreatedAt: time.Now(),
	}
	if err := svc.Records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist booking record: %w", err)
	}
	return &record, nil
}

// Reschedule moves an existing booking to the new slot, keeping its code.
func (svc *DefaultRegistryService) Reschedule(ctx context.Context, code string, slot models.CalendarSlot) (*models.BookingRecord, error) {
	if err := svc.Records.UpdateSlot(ctx, code, slot, models.BookingRescheduled); err != nil {
		return nil, fmt.Errorf("failed to reschedule booking %s: %w", code, err)
	}
	return svc.Records.GetByCode(ctx, code)
}

// Cancel marks an existing booking cancelled and returns the updated record.
func (svc *DefaultRegistryService) Cancel(ctx context.Context, code string) (*models.BookingRecord, error) {
	if err := svc.Records.UpdateStatus(ctx, code, models.BookingCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel booking %s: %w", code, err)
	}
	return svc.Records.GetByCode(ctx, code)
}

// mintCode generates a booking code, re-rolling on the unlikely collision
// with an existing record.
func (svc *DefaultRegistryService) mintCode(ctx context.Context) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code, err := utils.GenerateBookingCode(svc.CodePrefix)
		if err != nil {
			return "", err
		}
		_, err = svc.Records.GetByCode(ctx, code)
		if errors.Is(err, recordsRepo.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check booking code collision: %w", err)
		}
	}
	return "", fmt.Errorf("failed to mint a unique booking code after %d attempts", codeAttempts)
}

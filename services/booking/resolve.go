package booking

import (
	"context"
	"errors"
	"fmt"

	recordsRepo "advisordesk/database/repository/records"
	"advisordesk/models"
)

// Resolve looks up an existing booking by its caller-supplied code. Codes
// are matched after normalization, so spoken variants ("nlp 760") find
// the stored "NL-P760". Reschedule and cancel flows must resolve a code
// before any further session mutation is accepted.
func (svc *DefaultRegistryService) Resolve(ctx context.Context, code string) (*models.BookingRecord, error) {
	record, err := svc.Records.GetByCode(ctx, code)
	if errors.Is(err, recordsRepo.ErrNotFound) {
		return nil, NewFlowError(CodeNotFound, fmt.Sprintf("no booking found for code %q", code))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve booking %s: %w", code, err)
	}
	if record.Status == models.BookingCancelled {
		return nil, NewFlowError(CodeNotFound, fmt.Sprintf("booking %q is already cancelled", code))
	}
	return record, nil
}

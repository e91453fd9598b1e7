package recordsRepo

import (
	"context"
	"sync"
	"time"

	"advisordesk/models"
	"advisordesk/utils"
)

// MemoryRecordRepo is an in-memory BookingRecordRepository for tests and
// deployments without a database.
type MemoryRecordRepo struct {
	mu      sync.RWMutex
	records map[string]models.BookingRecord
}

func NewMemoryRecordRepo() *MemoryRecordRepo {
	return &MemoryRecordRepo{records: make(map[string]models.BookingRecord)}
}

func (r *MemoryRecordRepo) Create(ctx context.Context, record models.BookingRecord) error {
	record.NormCode = utils.NormalizeBookingCode(record.Code)
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	record.UpdatedAt = record.CreatedAt

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.NormCode] = record
	return nil
}

func (r *MemoryRecordRepo) GetByCode(ctx context.Context, code string) (*models.BookingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[utils.NormalizeBookingCode(code)]
	if !ok {
		return nil, ErrNotFound
	}
	return &record, nil
}

func (r *MemoryRecordRepo) UpdateSlot(ctx context.Context, code string, slot models.CalendarSlot, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := utils.NormalizeBookingCode(code)
	record, ok := r.records[key]
	if !ok {
		return ErrNotFound
	}
	record.Slot = slot
	record.Status = status
	record.UpdatedAt = time.Now()
	r.records[key] = record
	return nil
}

func (r *MemoryRecordRepo) UpdateStatus(ctx context.Context, code string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := utils.NormalizeBookingCode(code)
	record, ok := r.records[key]
	if !ok {
		return ErrNotFound
	}
	record.Status = status
	record.UpdatedAt = time.Now()
	r.records[key] = record
	return nil
}

package recordsRepo

import (
	"context"
	"errors"
	"time"

	"advisordesk/models"
	"advisordesk/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new booking record keyed by its code.
func (r *mongoRecordRepo) Create(ctx context.Context, record models.BookingRecord) error {
	record.NormCode = utils.NormalizeBookingCode(record.Code)
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	record.UpdatedAt = record.CreatedAt

	_, err := r.coll.InsertOne(ctx, record)
	return err
}

// GetByCode returns the record whose code matches after normalization.
func (r *mongoRecordRepo) GetByCode(ctx context.Context, code string) (*models.BookingRecord, error) {
	var record models.BookingRecord
	err := r.coll.FindOne(ctx, bson.M{"normCode": utils.NormalizeBookingCode(code)}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateSlot moves an existing booking to a new slot (reschedule).
func (r *mongoRecordRepo) UpdateSlot(ctx context.Context, code string, slot models.CalendarSlot, status string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"normCode": utils.NormalizeBookingCode(code)},
		bson.M{"$set": bson.M{"slot": slot, "status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("booking record not found")
	}
	return nil
}

// UpdateStatus changes a booking's status (e.g. cancelled).
func (r *mongoRecordRepo) UpdateStatus(ctx context.Context, code string, status string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"normCode": utils.NormalizeBookingCode(code)},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("booking record not found")
	}
	return nil
}

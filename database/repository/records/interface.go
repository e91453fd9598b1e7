package recordsRepo

import (
	"context"

	"advisordesk/database"
	"advisordesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no record matches the given booking code.
var ErrNotFound = mongo.ErrNoDocuments

// BookingRecordRepository is the registry of completed bookings. The
// conversation engine resolves reschedule/cancel codes against it, and the
// finalizer uses it for collision checks when minting new codes.
type BookingRecordRepository interface {
	Create(ctx context.Context, record models.BookingRecord) error
	GetByCode(ctx context.Context, code string) (*models.BookingRecord, error)
	UpdateSlot(ctx context.Context, code string, slot models.CalendarSlot, status string) error
	UpdateStatus(ctx context.Context, code string, status string) error
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a BookingRecordRepository backed by MongoDB.
func NewMongoRecordRepo() BookingRecordRepository {
	db := database.MongoClient.Database("advisordesk")
	return &mongoRecordRepo{
		coll: db.Collection("booking_records"),
	}
}

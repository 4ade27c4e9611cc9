package booking

import (
	"context"
	"time"

	"fitbook/internal/domain"
)

// BookingRepository persists bookings. Book runs the booking insert,
// the roster seat claim and the user bookings append in a single
// transaction.
type BookingRepository interface {
	Book(ctx context.Context, b *domain.Booking, capacity int) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ExistsForScheduleAndTrainee(ctx context.Context, scheduleID, traineeID int64) (bool, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListByTrainer(ctx context.Context, trainerID int64) ([]domain.Booking, error)
	Cancel(ctx context.Context, id int64, cancelledBy *int64, at time.Time, notes string) error
}

// ScheduleReader is the slice of the schedule registry the ledger
// needs: existence, capacity and the trainer to denormalize.
type ScheduleReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
}

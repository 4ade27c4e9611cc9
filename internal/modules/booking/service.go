package booking

import (
	"context"
	"errors"
	"time"

	"fitbook/internal/domain"
	"fitbook/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Service is the booking ledger. It checks eligibility in a fixed
// order (schedule exists, not already booked, seats left) and then
// lets the repository apply the three writes atomically.
type Service struct {
	bookings  BookingRepository
	schedules ScheduleReader
}

func NewService(bookings BookingRepository, schedules ScheduleReader) *Service {
	return &Service{
		bookings:  bookings,
		schedules: schedules,
	}
}

func (s *Service) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	sched, err := s.schedules.GetByID(ctx, req.Schedule)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	// Status-blind on purpose: a cancelled booking for the pair still
	// blocks re-booking.
	booked, err := s.bookings.ExistsForScheduleAndTrainee(ctx, req.Schedule, req.Trainee)
	if err != nil {
		return nil, err
	}
	if booked {
		return nil, ErrAlreadyBooked
	}

	if len(sched.Trainees) >= sched.Capacity() {
		return nil, ErrScheduleFull
	}

	bookingDate := time.Now()
	if req.BookingDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.BookingDate)
		if err != nil {
			return nil, ErrValidation
		}
		bookingDate = parsed
	}

	b := &domain.Booking{
		ScheduleID:  req.Schedule,
		TraineeID:   req.Trainee,
		TrainerID:   sched.TrainerID,
		BookingDate: bookingDate,
		Status:      domain.BookingPending,
		Attended:    false,
		Notes:       req.Notes,
	}

	// The capacity check above is only a fast path; the conditional
	// roster insert inside Book is what holds the invariant under
	// concurrent requests. Likewise the unique (schedule, trainee)
	// index backs the already-booked check.
	if err := s.bookings.Book(ctx, b, sched.Capacity()); err != nil {
		if errors.Is(err, repository.ErrCapacityExceeded) {
			return nil, ErrScheduleFull
		}
		if isUniqueViolation(err, "idx_bookings_schedule_trainee") {
			return nil, ErrAlreadyBooked
		}
		return nil, err
	}
	return b, nil
}

// Cancel marks the booking cancelled and records who did it, plus an
// optional note. The trainee keeps the roster seat and the booking
// stays in the user's list: cancellation does not release capacity.
func (s *Service) Cancel(ctx context.Context, id int64, cancelledBy int64, notes string) (*domain.Booking, error) {
	if _, err := s.bookings.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	var byRef *int64
	if cancelledBy != 0 {
		byRef = &cancelledBy
	}

	if err := s.bookings.Cancel(ctx, id, byRef, time.Now(), notes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return s.bookings.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) GetByTrainer(ctx context.Context, trainerID int64) ([]domain.Booking, error) {
	return s.bookings.ListByTrainer(ctx, trainerID)
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
	}
	return false
}

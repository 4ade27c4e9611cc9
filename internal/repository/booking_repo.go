package repository

import (
	"context"
	"errors"
	"time"

	"fitbook/internal/domain"

	"gorm.io/gorm"
)

// ErrCapacityExceeded is returned by Book when the conditional roster
// insert finds the schedule already at capacity.
var ErrCapacityExceeded = errors.New("schedule capacity exceeded")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	ScheduleID  int64      `gorm:"column:schedule_id;uniqueIndex:idx_bookings_schedule_trainee"`
	TraineeID   int64      `gorm:"column:trainee_id;uniqueIndex:idx_bookings_schedule_trainee"`
	TrainerID   *int64     `gorm:"column:trainer_id"`
	BookingDate time.Time  `gorm:"column:booking_date"`
	Status      string     `gorm:"column:status"`
	Attended    bool       `gorm:"column:attended"`
	CancelledBy *int64     `gorm:"column:cancelled_by"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	Notes       *string    `gorm:"column:notes"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Booking{
		ID:          m.ID,
		ScheduleID:  m.ScheduleID,
		TraineeID:   m.TraineeID,
		TrainerID:   m.TrainerID,
		BookingDate: m.BookingDate,
		Status:      domain.BookingStatus(m.Status),
		Attended:    m.Attended,
		CancelledBy: m.CancelledBy,
		CancelledAt: m.CancelledAt,
		CompletedAt: m.CompletedAt,
		Notes:       notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}

	return bookingModel{
		ID:          b.ID,
		ScheduleID:  b.ScheduleID,
		TraineeID:   b.TraineeID,
		TrainerID:   b.TrainerID,
		BookingDate: b.BookingDate,
		Status:      string(b.Status),
		Attended:    b.Attended,
		CancelledBy: b.CancelledBy,
		CancelledAt: b.CancelledAt,
		CompletedAt: b.CompletedAt,
		Notes:       notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

const rosterInsertSQL = `
INSERT INTO schedule_trainees (schedule_id, trainee_id, created_at)
SELECT ?, ?, ?
WHERE (SELECT COUNT(1) FROM schedule_trainees WHERE schedule_id = ?) < ?
`

// Book inserts the booking, takes a roster seat and records the
// booking on the trainee's user row, all in one transaction. The seat
// is taken with a conditional insert so the capacity invariant holds
// even when two requests race for the last seat; losing the race rolls
// the whole booking back with ErrCapacityExceeded.
func (r *BookingRepository) Book(ctx context.Context, b *domain.Booking, capacity int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Under READ COMMITTED two transactions racing for the last seat
		// would each count the roster against a snapshot missing the
		// other's uncommitted row, and both conditional inserts would
		// pass. Locking the schedule row serializes the count-then-insert
		// per schedule. Sqlite has a single writer and needs no lock.
		if tx.Dialector.Name() == "postgres" {
			var locked int64
			if err := tx.Raw(
				"SELECT id FROM schedules WHERE id = ? FOR UPDATE", b.ScheduleID,
			).Scan(&locked).Error; err != nil {
				return err
			}
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		res := tx.Exec(rosterInsertSQL,
			b.ScheduleID, b.TraineeID, time.Now(),
			b.ScheduleID, capacity,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCapacityExceeded
		}

		if err := appendUserBooking(tx, b.TraineeID, m.ID); err != nil {
			return err
		}

		*b = *toDomainBooking(m)
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// ExistsForScheduleAndTrainee is status-blind: a cancelled booking
// still blocks re-booking the same schedule.
func (r *BookingRepository) ExistsForScheduleAndTrainee(ctx context.Context, scheduleID, traineeID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("schedule_id = ? AND trainee_id = ?", scheduleID, traineeID).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *BookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).Order("id ASC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) ListByTrainer(ctx context.Context, trainerID int64) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("id ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// Cancel marks the booking cancelled. The roster seat and the user's
// bookings entry are intentionally left in place.
func (r *BookingRepository) Cancel(ctx context.Context, id int64, cancelledBy *int64, at time.Time, notes string) error {
	updates := map[string]any{
		"status":       string(domain.BookingCancelled),
		"attended":     false,
		"cancelled_by": cancelledBy,
		"cancelled_at": at,
		"updated_at":   at,
	}
	if notes != "" {
		updates["notes"] = notes
	}

	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

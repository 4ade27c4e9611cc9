package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fitbook/internal/database"
	"fitbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBookingRepoTest(t *testing.T) (*BookingRepository, *ScheduleRepository, *UserRepository) {
	db, err := database.Connect(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	return NewBookingRepository(db), NewScheduleRepository(db), NewUserRepository(db)
}

func seedTrainee(t *testing.T, users *UserRepository, email string) *domain.User {
	u := &domain.User{
		Name:     "Trainee",
		Email:    email,
		Role:     domain.RoleTrainee,
		IsActive: domain.StatusActive,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func seedSchedule(t *testing.T, schedules *ScheduleRepository, maxTrainees int) *domain.Schedule {
	s := &domain.Schedule{
		Title:       "Spin Class",
		Slug:        "spin-class-schedule",
		ClassDate:   time.Now().AddDate(0, 0, 3),
		StartTime:   "08:00",
		EndTime:     "10:00",
		Status:      domain.ScheduleScheduled,
		MaxTrainees: maxTrainees,
		CreatedBy:   1,
	}
	require.NoError(t, schedules.Create(context.Background(), s))
	return s
}

func newBooking(scheduleID, traineeID int64) *domain.Booking {
	return &domain.Booking{
		ScheduleID:  scheduleID,
		TraineeID:   traineeID,
		BookingDate: time.Now(),
		Status:      domain.BookingPending,
	}
}

// The conditional roster insert is the capacity guard: once the roster
// reaches maxTrainees, a booking for a different trainee must fail with
// ErrCapacityExceeded and leave no trace of itself.
func TestBook_CapacityGuardRollsBackLoser(t *testing.T) {
	bookings, schedules, users := setupBookingRepoTest(t)
	ctx := context.Background()

	sched := seedSchedule(t, schedules, 2)
	t1 := seedTrainee(t, users, "t1@fitbook.io")
	t2 := seedTrainee(t, users, "t2@fitbook.io")
	t3 := seedTrainee(t, users, "t3@fitbook.io")

	require.NoError(t, bookings.Book(ctx, newBooking(sched.ID, t1.ID), sched.Capacity()))
	require.NoError(t, bookings.Book(ctx, newBooking(sched.ID, t2.ID), sched.Capacity()))

	loser := newBooking(sched.ID, t3.ID)
	err := bookings.Book(ctx, loser, sched.Capacity())
	require.ErrorIs(t, err, ErrCapacityExceeded)

	// The roster never exceeds capacity.
	loaded, err := schedules.GetByID(ctx, sched.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{t1.ID, t2.ID}, loaded.Trainees)

	// The losing transaction rolled back whole: no booking row and no
	// entry on the trainee's user record.
	exists, err := bookings.ExistsForScheduleAndTrainee(ctx, sched.ID, t3.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	u, err := users.GetByID(ctx, t3.ID)
	require.NoError(t, err)
	assert.Empty(t, u.Bookings)
}

func TestBook_RecordsBookingOnUser(t *testing.T) {
	bookings, schedules, users := setupBookingRepoTest(t)
	ctx := context.Background()

	sched := seedSchedule(t, schedules, 5)
	trainee := seedTrainee(t, users, "t1@fitbook.io")

	b := newBooking(sched.ID, trainee.ID)
	require.NoError(t, bookings.Book(ctx, b, sched.Capacity()))
	require.NotZero(t, b.ID)

	u, err := users.GetByID(ctx, trainee.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID}, u.Bookings)
}

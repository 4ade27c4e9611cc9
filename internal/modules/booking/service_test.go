package booking

import (
	"context"
	"testing"
	"time"

	"fitbook/internal/domain"
	"fitbook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Book(ctx context.Context, b *domain.Booking, capacity int) error {
	args := m.Called(ctx, b, capacity)
	if b != nil && args.Error(0) == nil {
		b.ID = 555 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ExistsForScheduleAndTrainee(ctx context.Context, scheduleID, traineeID int64) (bool, error) {
	args := m.Called(ctx, scheduleID, traineeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByTrainer(ctx context.Context, trainerID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Cancel(ctx context.Context, id int64, cancelledBy *int64, at time.Time, notes string) error {
	args := m.Called(ctx, id, cancelledBy, at, notes)
	return args.Error(0)
}

type MockScheduleReader struct {
	mock.Mock
}

func (m *MockScheduleReader) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func openSchedule(trainerID int64, maxTrainees int, trainees ...int64) *domain.Schedule {
	return &domain.Schedule{
		ID:          20,
		Title:       "Morning Yoga",
		Slug:        "morning-yoga-schedule",
		TrainerID:   &trainerID,
		Trainees:    trainees,
		ClassDate:   time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "07:00",
		EndTime:     "09:00",
		Status:      domain.ScheduleScheduled,
		MaxTrainees: maxTrainees,
	}
}

func TestService_Create_Success(t *testing.T) {
	bookings := new(MockBookingRepository)
	schedules := new(MockScheduleReader)

	schedules.On("GetByID", mock.Anything, int64(20)).Return(openSchedule(3, 10), nil)
	bookings.On("ExistsForScheduleAndTrainee", mock.Anything, int64(20), int64(7)).Return(false, nil)
	bookings.On("Book", mock.Anything, mock.Anything, 10).Return(nil)

	service := NewService(bookings, schedules)

	b, err := service.Create(context.Background(), CreateBookingRequest{
		Schedule: 20,
		Trainee:  7,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(555), b.ID)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.False(t, b.Attended)
	require.NotNil(t, b.TrainerID)
	assert.Equal(t, int64(3), *b.TrainerID)
	bookings.AssertExpectations(t)
}

func TestService_Create_ScheduleNotFound(t *testing.T) {
	bookings := new(MockBookingRepository)
	schedules := new(MockScheduleReader)

	schedules.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(bookings, schedules)

	_, err := service.Create(context.Background(), CreateBookingRequest{Schedule: 99, Trainee: 7})
	assert.ErrorIs(t, err, ErrScheduleNotFound)
	bookings.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Create_AlreadyBooked(t *testing.T) {
	bookings := new(MockBookingRepository)
	schedules := new(MockScheduleReader)

	schedules.On("GetByID", mock.Anything, int64(20)).Return(openSchedule(3, 10), nil)
	bookings.On("ExistsForScheduleAndTrainee", mock.Anything, int64(20), int64(7)).Return(true, nil)

	service := NewService(bookings, schedules)

	_, err := service.Create(context.Background(), CreateBookingRequest{Schedule: 20, Trainee: 7})
	assert.ErrorIs(t, err, ErrAlreadyBooked)
	bookings.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Create_ScheduleFull(t *testing.T) {
	bookings := new(MockBookingRepository)
	schedules := new(MockScheduleReader)

	schedules.On("GetByID", mock.Anything, int64(20)).Return(openSchedule(3, 1, 42), nil)
	bookings.On("ExistsForScheduleAndTrainee", mock.Anything, int64(20), int64(7)).Return(false, nil)

	service := NewService(bookings, schedules)

	_, err := service.Create(context.Background(), CreateBookingRequest{Schedule: 20, Trainee: 7})
	assert.ErrorIs(t, err, ErrScheduleFull)
	bookings.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Create_LosesCapacityRace(t *testing.T) {
	bookings := new(MockBookingRepository)
	schedules := new(MockScheduleReader)

	// The read sees a free seat, but the conditional insert loses the
	// race and the transaction rolls back.
	schedules.On("GetByID", mock.Anything, int64(20)).Return(openSchedule(3, 1), nil)
	bookings.On("ExistsForScheduleAndTrainee", mock.Anything, int64(20), int64(7)).Return(false, nil)
	bookings.On("Book", mock.Anything, mock.Anything, 1).Return(repository.ErrCapacityExceeded)

	service := NewService(bookings, schedules)

	_, err := service.Create(context.Background(), CreateBookingRequest{Schedule: 20, Trainee: 7})
	assert.ErrorIs(t, err, ErrScheduleFull)
}

func TestService_Create_InvalidBookingDate(t *testing.T) {
	bookings := new(MockBookingRepository)
	schedules := new(MockScheduleReader)

	schedules.On("GetByID", mock.Anything, int64(20)).Return(openSchedule(3, 10), nil)
	bookings.On("ExistsForScheduleAndTrainee", mock.Anything, int64(20), int64(7)).Return(false, nil)

	service := NewService(bookings, schedules)

	_, err := service.Create(context.Background(), CreateBookingRequest{
		Schedule:    20,
		Trainee:     7,
		BookingDate: "next tuesday",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Cancel_SetsFieldsKeepsSeat(t *testing.T) {
	bookings := new(MockBookingRepository)
	schedules := new(MockScheduleReader)

	existing := &domain.Booking{
		ID:         555,
		ScheduleID: 20,
		TraineeID:  7,
		Status:     domain.BookingPending,
		Attended:   false,
	}
	bookings.On("GetByID", mock.Anything, int64(555)).Return(existing, nil).Once()

	var cancelledBy *int64
	var cancelledAt time.Time
	var notes string
	bookings.On("Cancel", mock.Anything, int64(555), mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			cancelledBy, _ = args.Get(2).(*int64)
			cancelledAt = args.Get(3).(time.Time)
			notes = args.String(4)
		}).Return(nil)

	now := time.Now()
	cancelled := &domain.Booking{
		ID:          555,
		ScheduleID:  20,
		TraineeID:   7,
		Status:      domain.BookingCancelled,
		Attended:    false,
		CancelledAt: &now,
	}
	bookings.On("GetByID", mock.Anything, int64(555)).Return(cancelled, nil)

	service := NewService(bookings, schedules)

	b, err := service.Cancel(context.Background(), 555, 1, "trainer unavailable")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	assert.False(t, b.Attended)
	assert.NotNil(t, b.CancelledAt)

	require.NotNil(t, cancelledBy)
	assert.Equal(t, int64(1), *cancelledBy)
	assert.WithinDuration(t, time.Now(), cancelledAt, 5*time.Second)
	assert.Equal(t, "trainer unavailable", notes)
	// No roster or user-bookings mutation happens on cancel: the only
	// repository write is the status update above.
	bookings.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Cancel_NotFound(t *testing.T) {
	bookings := new(MockBookingRepository)
	schedules := new(MockScheduleReader)

	bookings.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(bookings, schedules)

	_, err := service.Cancel(context.Background(), 404, 1, "")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetByTrainer(t *testing.T) {
	bookings := new(MockBookingRepository)
	schedules := new(MockScheduleReader)

	trainerID := int64(3)
	bookings.On("ListByTrainer", mock.Anything, trainerID).Return([]domain.Booking{
		{ID: 1, ScheduleID: 20, TraineeID: 7, TrainerID: &trainerID},
	}, nil)

	service := NewService(bookings, schedules)

	out, err := service.GetByTrainer(context.Background(), trainerID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, trainerID, *out[0].TrainerID)
}

package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking is a trainee's claim on one seat of a schedule. TrainerID is
// copied from the schedule at creation time so trainer-side queries do
// not need a join.
type Booking struct {
	ID          int64         `json:"id"`
	ScheduleID  int64         `json:"schedule" validate:"required"`
	TraineeID   int64         `json:"trainee" validate:"required"`
	TrainerID   *int64        `json:"trainer,omitempty"`
	BookingDate time.Time     `json:"bookingDate"`
	Status      BookingStatus `json:"status"`
	Attended    bool          `json:"attended"`
	CancelledBy *int64        `json:"cancelledBy,omitempty"`
	CancelledAt *time.Time    `json:"cancelledAt,omitempty"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
	Notes       string        `json:"notes,omitempty" validate:"omitempty,max=500"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

package booking

import (
	"time"

	"fitbook/internal/domain"
)

type CreateBookingRequest struct {
	Schedule    int64  `json:"schedule" binding:"required"`
	Trainee     int64  `json:"trainee"`
	BookingDate string `json:"bookingDate"`
	Notes       string `json:"notes" binding:"omitempty,max=500"`
}

type CancelBookingRequest struct {
	Notes string `json:"notes" binding:"omitempty,max=500"`
}

type BookingResponse struct {
	ID          int64      `json:"id"`
	Schedule    int64      `json:"schedule"`
	Trainee     int64      `json:"trainee"`
	Trainer     *int64     `json:"trainer,omitempty"`
	BookingDate time.Time  `json:"bookingDate"`
	Status      string     `json:"status"`
	Attended    bool       `json:"attended"`
	CancelledBy *int64     `json:"cancelledBy,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func NewBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		Schedule:    b.ScheduleID,
		Trainee:     b.TraineeID,
		Trainer:     b.TrainerID,
		BookingDate: b.BookingDate,
		Status:      string(b.Status),
		Attended:    b.Attended,
		CancelledBy: b.CancelledBy,
		CancelledAt: b.CancelledAt,
		CompletedAt: b.CompletedAt,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func NewBookingListResponse(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, NewBookingResponse(&bookings[i]))
	}
	return out
}

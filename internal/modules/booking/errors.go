package booking

import "errors"

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAlreadyBooked    = errors.New("trainee has already booked this schedule")
	ErrScheduleFull     = errors.New("the schedule is full, no more bookings allowed")
	ErrValidation       = errors.New("validation error")
)

package domain

import "time"

type ScheduleStatus string

const (
	ScheduleScheduled ScheduleStatus = "scheduled"
	ScheduleCancelled ScheduleStatus = "cancelled"
	ScheduleCompleted ScheduleStatus = "completed"
)

const (
	// DefaultMaxTrainees is both the default and the hard ceiling for
	// seats on a single class.
	DefaultMaxTrainees = 10

	// MaxSchedulesPerDay caps how many classes may share one calendar
	// date, counting every status.
	MaxSchedulesPerDay = 5
)

// Schedule is a single bookable class session led by a trainer.
type Schedule struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title" validate:"required,min=2,max=100"`
	Slug        string         `json:"slug"`
	Description string         `json:"description,omitempty" validate:"omitempty,max=500"`
	TrainerID   *int64         `json:"trainer,omitempty"`
	TrainerName string         `json:"trainerName,omitempty"`
	Trainees    []int64        `json:"trainees"`
	ClassDate   time.Time      `json:"classDate"`
	StartTime   string         `json:"startTime"`
	EndTime     string         `json:"endTime"`
	Status      ScheduleStatus `json:"status"`
	MaxTrainees int            `json:"maxTrainees" validate:"omitempty,min=1,max=10"`
	CreatedBy   int64          `json:"createdBy"`
	Notes       string         `json:"notes,omitempty" validate:"omitempty,max=500"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Capacity returns the effective seat limit.
func (s *Schedule) Capacity() int {
	if s.MaxTrainees <= 0 {
		return DefaultMaxTrainees
	}
	return s.MaxTrainees
}

// IsFull, IsCancelled and IsCompleted are computed from status and the
// roster on every read. They are never stored, so they cannot drift.
func (s *Schedule) IsFull() bool { return len(s.Trainees) >= s.Capacity() }

func (s *Schedule) IsCancelled() bool { return s.Status == ScheduleCancelled }

func (s *Schedule) IsCompleted() bool { return s.Status == ScheduleCompleted }

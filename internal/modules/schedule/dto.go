package schedule

import (
	"time"

	"fitbook/internal/domain"
)

type CreateScheduleRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Trainer     *int64 `json:"trainer"`
	ClassDate   string `json:"classDate" binding:"required"`
	StartTime   string `json:"startTime" binding:"required"`
	MaxTrainees int    `json:"maxTrainees" binding:"omitempty,min=1,max=10"`
	CreatedBy   int64  `json:"createdBy"`
	Notes       string `json:"notes" binding:"omitempty,max=500"`
}

// UpdateScheduleRequest carries a partial payload; nil fields are left
// untouched.
type UpdateScheduleRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Trainer     *int64  `json:"trainer"`
	ClassDate   *string `json:"classDate"`
	StartTime   *string `json:"startTime"`
	Status      *string `json:"status" binding:"omitempty,oneof=scheduled cancelled completed"`
	MaxTrainees *int    `json:"maxTrainees" binding:"omitempty,min=1,max=10"`
	Notes       *string `json:"notes" binding:"omitempty,max=500"`
}

type ScheduleResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Trainer     *int64    `json:"trainer,omitempty"`
	TrainerName string    `json:"trainerName,omitempty"`
	Trainees    []int64   `json:"trainees"`
	ClassDate   time.Time `json:"classDate"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Status      string    `json:"status"`
	MaxTrainees int       `json:"maxTrainees"`
	IsFull      bool      `json:"isFull"`
	IsCancelled bool      `json:"isCancelled"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedBy   int64     `json:"createdBy"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewScheduleResponse projects a schedule for the wire. The isFull,
// isCancelled and isCompleted booleans are computed here, not stored.
func NewScheduleResponse(s *domain.Schedule) ScheduleResponse {
	trainees := s.Trainees
	if trainees == nil {
		trainees = []int64{}
	}

	return ScheduleResponse{
		ID:          s.ID,
		Title:       s.Title,
		Slug:        s.Slug,
		Description: s.Description,
		Trainer:     s.TrainerID,
		TrainerName: s.TrainerName,
		Trainees:    trainees,
		ClassDate:   s.ClassDate,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Status:      string(s.Status),
		MaxTrainees: s.Capacity(),
		IsFull:      s.IsFull(),
		IsCancelled: s.IsCancelled(),
		IsCompleted: s.IsCompleted(),
		CreatedBy:   s.CreatedBy,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func NewScheduleListResponse(schedules []domain.Schedule) []ScheduleResponse {
	out := make([]ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		out = append(out, NewScheduleResponse(&schedules[i]))
	}
	return out
}

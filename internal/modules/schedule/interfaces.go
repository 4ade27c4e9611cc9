package schedule

import (
	"context"
	"time"

	"fitbook/internal/domain"
)

// ScheduleRepository is the persistence surface the registry needs.
type ScheduleRepository interface {
	Create(ctx context.Context, s *domain.Schedule) error
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Schedule, error)
	Update(ctx context.Context, s *domain.Schedule) error
	Delete(ctx context.Context, id int64) error
	CountOnDate(ctx context.Context, date time.Time, excludeID int64) (int64, error)
	TitleExists(ctx context.Context, title string, excludeID int64) (bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListUpcoming(ctx context.Context, from time.Time) ([]domain.Schedule, error)
	ListByTrainer(ctx context.Context, trainerID int64) ([]domain.Schedule, error)
}

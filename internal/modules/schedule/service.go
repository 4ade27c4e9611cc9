package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fitbook/internal/domain"
	"fitbook/internal/pkg/timeutil"
	"fitbook/internal/pkg/validator"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Service enforces the schedule invariants: at most five classes per
// calendar day, case-insensitively unique titles, unique slugs and a
// derived end time two hours after the start.
type Service struct {
	schedules ScheduleRepository
}

func NewService(schedules ScheduleRepository) *Service {
	return &Service{schedules: schedules}
}

// slugify lowercases the title and joins its words with "-".
func slugify(title string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(title)))
	return strings.Join(words, "-")
}

func (s *Service) Create(ctx context.Context, req CreateScheduleRequest) (*domain.Schedule, error) {
	if !timeutil.IsClockTime(req.StartTime) {
		return nil, ErrValidation
	}

	classDate, err := timeutil.ParseClassDate(req.ClassDate)
	if err != nil {
		return nil, ErrValidation
	}

	cnt, err := s.schedules.CountOnDate(ctx, classDate, 0)
	if err != nil {
		return nil, err
	}
	if cnt >= domain.MaxSchedulesPerDay {
		return nil, ErrDailyLimitExceeded
	}

	taken, err := s.schedules.TitleExists(ctx, req.Title, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateTitle
	}

	slug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	endTime, err := timeutil.CalculateEndTime(req.StartTime)
	if err != nil {
		return nil, ErrValidation
	}

	maxTrainees := req.MaxTrainees
	if maxTrainees == 0 {
		maxTrainees = domain.DefaultMaxTrainees
	}

	sched := &domain.Schedule{
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		TrainerID:   req.Trainer,
		ClassDate:   classDate,
		StartTime:   req.StartTime,
		EndTime:     endTime,
		Status:      domain.ScheduleScheduled,
		MaxTrainees: maxTrainees,
		CreatedBy:   req.CreatedBy,
		Notes:       req.Notes,
	}
	if errs := validator.Validate(sched); errs != nil {
		return nil, ErrValidation
	}

	if err := s.schedules.Create(ctx, sched); err != nil {
		if isUniqueViolation(err, "idx_schedules_slug") {
			// Lost a slug race to a concurrent create with the same title.
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}
	return sched, nil
}

// uniqueSlug appends "-schedule" to the slugified title and then an
// incrementing numeric suffix until the slug is free.
func (s *Service) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slugify(title) + "-schedule"
	slug := base
	for n := 1; ; n++ {
		taken, err := s.schedules.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateScheduleRequest) (*domain.Schedule, error) {
	sched, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Title != nil && *req.Title != sched.Title {
		taken, err := s.schedules.TitleExists(ctx, *req.Title, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateTitle
		}
		sched.Title = *req.Title
	}

	if req.ClassDate != nil {
		newDate, err := timeutil.ParseClassDate(*req.ClassDate)
		if err != nil {
			return nil, ErrValidation
		}
		if !newDate.Equal(sched.ClassDate) {
			cnt, err := s.schedules.CountOnDate(ctx, newDate, id)
			if err != nil {
				return nil, err
			}
			if cnt >= domain.MaxSchedulesPerDay {
				return nil, ErrDailyLimitExceeded
			}
			sched.ClassDate = newDate
		}
	}

	if req.StartTime != nil {
		if !timeutil.IsClockTime(*req.StartTime) {
			return nil, ErrValidation
		}
		endTime, err := timeutil.CalculateEndTime(*req.StartTime)
		if err != nil {
			return nil, ErrValidation
		}
		sched.StartTime = *req.StartTime
		sched.EndTime = endTime
	}

	if req.Description != nil {
		sched.Description = *req.Description
	}
	if req.Trainer != nil {
		sched.TrainerID = req.Trainer
	}
	if req.Status != nil {
		sched.Status = domain.ScheduleStatus(*req.Status)
	}
	if req.MaxTrainees != nil {
		sched.MaxTrainees = *req.MaxTrainees
	}
	if req.Notes != nil {
		sched.Notes = *req.Notes
	}

	if errs := validator.Validate(sched); errs != nil {
		return nil, ErrValidation
	}

	if err := s.schedules.Update(ctx, sched); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.schedules.GetByID(ctx, id)
}

// List returns schedules from the start of today forward, earliest
// class first. Past classes are intentionally excluded.
func (s *Service) List(ctx context.Context) ([]domain.Schedule, error) {
	return s.schedules.ListUpcoming(ctx, timeutil.StartOfToday())
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Schedule, error) {
	sched, err := s.schedules.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sched, nil
}

func (s *Service) GetByTrainer(ctx context.Context, trainerID int64) ([]domain.Schedule, error) {
	return s.schedules.ListByTrainer(ctx, trainerID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.schedules.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
	}
	return false
}

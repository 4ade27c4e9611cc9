package repository

import (
	"context"
	"time"

	"fitbook/internal/domain"
	"fitbook/internal/pkg/timeutil"

	"gorm.io/gorm"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

type scheduleModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Title       string    `gorm:"column:title"`
	Slug        string    `gorm:"column:slug;uniqueIndex:idx_schedules_slug"`
	Description *string   `gorm:"column:description"`
	TrainerID   *int64    `gorm:"column:trainer_id"`
	ClassDate   time.Time `gorm:"column:class_date"`
	StartTime   string    `gorm:"column:start_time"`
	EndTime     string    `gorm:"column:end_time"`
	Status      string    `gorm:"column:status"`
	MaxTrainees int       `gorm:"column:max_trainees"`
	CreatedBy   int64     `gorm:"column:created_by"`
	Notes       *string   `gorm:"column:notes"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (scheduleModel) TableName() string { return "schedules" }

// scheduleTraineeModel is the roster: one row per seat taken. The
// capacity rule is enforced on this table with a conditional insert.
type scheduleTraineeModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	ScheduleID int64     `gorm:"column:schedule_id;uniqueIndex:idx_roster_schedule_trainee"`
	TraineeID  int64     `gorm:"column:trainee_id;uniqueIndex:idx_roster_schedule_trainee"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (scheduleTraineeModel) TableName() string { return "schedule_trainees" }

func toDomainSchedule(m scheduleModel) *domain.Schedule {
	var description, notes string
	if m.Description != nil {
		description = *m.Description
	}
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Schedule{
		ID:          m.ID,
		Title:       m.Title,
		Slug:        m.Slug,
		Description: description,
		TrainerID:   m.TrainerID,
		Trainees:    []int64{},
		ClassDate:   m.ClassDate,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Status:      domain.ScheduleStatus(m.Status),
		MaxTrainees: m.MaxTrainees,
		CreatedBy:   m.CreatedBy,
		Notes:       notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toScheduleModel(s *domain.Schedule) scheduleModel {
	var description, notes *string
	if s.Description != "" {
		v := s.Description
		description = &v
	}
	if s.Notes != "" {
		v := s.Notes
		notes = &v
	}

	return scheduleModel{
		ID:          s.ID,
		Title:       s.Title,
		Slug:        s.Slug,
		Description: description,
		TrainerID:   s.TrainerID,
		ClassDate:   s.ClassDate,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Status:      string(s.Status),
		MaxTrainees: s.MaxTrainees,
		CreatedBy:   s.CreatedBy,
		Notes:       notes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (r *ScheduleRepository) Create(ctx context.Context, s *domain.Schedule) error {
	m := toScheduleModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSchedule(m)
	return nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	var m scheduleModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	s := toDomainSchedule(m)
	if err := r.loadRosters(ctx, []*domain.Schedule{s}); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *ScheduleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Schedule, error) {
	var m scheduleModel
	tx := r.db.WithContext(ctx).Where("slug = ?", slug).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	s := toDomainSchedule(m)
	if err := r.loadRosters(ctx, []*domain.Schedule{s}); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *ScheduleRepository) Update(ctx context.Context, s *domain.Schedule) error {
	m := toScheduleModel(s)
	tx := r.db.WithContext(ctx).
		Model(&scheduleModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"title":        m.Title,
			"slug":         m.Slug,
			"description":  m.Description,
			"trainer_id":   m.TrainerID,
			"class_date":   m.ClassDate,
			"start_time":   m.StartTime,
			"end_time":     m.EndTime,
			"status":       m.Status,
			"max_trainees": m.MaxTrainees,
			"notes":        m.Notes,
			"updated_at":   time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&scheduleModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountOnDate counts schedules whose class date falls on the same
// calendar day as date, every status included. excludeID skips the
// schedule being updated (0 to count all).
func (r *ScheduleRepository) CountOnDate(ctx context.Context, date time.Time, excludeID int64) (int64, error) {
	start, end := timeutil.DayBounds(date)

	q := r.db.WithContext(ctx).
		Model(&scheduleModel{}).
		Where("class_date >= ? AND class_date <= ?", start, end)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

// TitleExists reports whether another schedule carries the same title,
// compared case-insensitively and exactly.
func (r *ScheduleRepository) TitleExists(ctx context.Context, title string, excludeID int64) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&scheduleModel{}).
		Where("LOWER(title) = LOWER(?)", title)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *ScheduleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&scheduleModel{}).
		Where("slug = ?", slug).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

type scheduleListRow struct {
	ScheduleModel scheduleModel `gorm:"embedded"`
	TrainerName   *string       `gorm:"column:trainer_name"`
}

// ListUpcoming returns schedules from the given day forward, earliest
// first, with the trainer's display name attached.
func (r *ScheduleRepository) ListUpcoming(ctx context.Context, from time.Time) ([]domain.Schedule, error) {
	q := `
SELECT s.*, u.name AS trainer_name
FROM schedules s
LEFT JOIN users u ON u.id = s.trainer_id
WHERE s.class_date >= ?
ORDER BY s.class_date ASC
`
	var rows []scheduleListRow
	tx := r.db.WithContext(ctx).Raw(q, from).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]*domain.Schedule, 0, len(rows))
	for _, row := range rows {
		s := toDomainSchedule(row.ScheduleModel)
		if row.TrainerName != nil {
			s.TrainerName = *row.TrainerName
		}
		out = append(out, s)
	}
	if err := r.loadRosters(ctx, out); err != nil {
		return nil, err
	}

	result := make([]domain.Schedule, 0, len(out))
	for _, s := range out {
		result = append(result, *s)
	}
	return result, nil
}

func (r *ScheduleRepository) ListByTrainer(ctx context.Context, trainerID int64) ([]domain.Schedule, error) {
	var ms []scheduleModel
	tx := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("class_date ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]*domain.Schedule, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainSchedule(m))
	}
	if err := r.loadRosters(ctx, out); err != nil {
		return nil, err
	}

	result := make([]domain.Schedule, 0, len(out))
	for _, s := range out {
		result = append(result, *s)
	}
	return result, nil
}

// loadRosters fills Trainees for each schedule, in booking order.
func (r *ScheduleRepository) loadRosters(ctx context.Context, schedules []*domain.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(schedules))
	byID := make(map[int64]*domain.Schedule, len(schedules))
	for _, s := range schedules {
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}

	var rows []scheduleTraineeModel
	tx := r.db.WithContext(ctx).
		Where("schedule_id IN ?", ids).
		Order("id ASC").
		Find(&rows)
	if tx.Error != nil {
		return tx.Error
	}

	for _, row := range rows {
		if s, ok := byID[row.ScheduleID]; ok {
			s.Trainees = append(s.Trainees, row.TraineeID)
		}
	}
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"fitbook/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex:idx_users_email"`
	PasswordHash string    `gorm:"column:password_hash"`
	Phone        *string   `gorm:"column:phone"`
	Role         string    `gorm:"column:role"`
	IsActive     string    `gorm:"column:is_active"`
	Bookings     string    `gorm:"column:bookings;type:json"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var phone string
	if m.Phone != nil {
		phone = *m.Phone
	}

	bookings := []int64{}
	if m.Bookings != "" {
		_ = json.Unmarshal([]byte(m.Bookings), &bookings)
	}

	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Phone:        phone,
		Role:         domain.UserRole(m.Role),
		IsActive:     domain.ActiveStatus(m.IsActive),
		Bookings:     bookings,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var phone *string
	if u.Phone != "" {
		v := u.Phone
		phone = &v
	}

	bookings := u.Bookings
	if bookings == nil {
		bookings = []int64{}
	}
	raw, _ := json.Marshal(bookings)

	return userModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        email,
		PasswordHash: u.PasswordHash,
		Phone:        phone,
		Role:         string(u.Role),
		IsActive:     string(u.IsActive),
		Bookings:     string(raw),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

// appendUserBooking records a booking id in the user's bookings list.
// It takes the transaction handle so the booking ledger can update the
// user inside the same commit.
func appendUserBooking(tx *gorm.DB, userID, bookingID int64) error {
	var m userModel
	if err := tx.First(&m, userID).Error; err != nil {
		return err
	}

	bookings := []int64{}
	if m.Bookings != "" {
		if err := json.Unmarshal([]byte(m.Bookings), &bookings); err != nil {
			return err
		}
	}
	bookings = append(bookings, bookingID)

	raw, err := json.Marshal(bookings)
	if err != nil {
		return err
	}

	return tx.Model(&userModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"bookings":   string(raw),
			"updated_at": time.Now(),
		}).Error
}

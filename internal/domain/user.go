package domain

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleTrainer UserRole = "TRAINER"
	RoleTrainee UserRole = "TRAINEE"
)

type ActiveStatus string

const (
	StatusActive   ActiveStatus = "ACTIVE"
	StatusInactive ActiveStatus = "INACTIVE"
	StatusBlocked  ActiveStatus = "BLOCKED"
)

type User struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name" validate:"required"`
	Email        string       `json:"email" validate:"required,email"`
	PasswordHash string       `json:"-"`
	Phone        string       `json:"phone,omitempty"`
	Role         UserRole     `json:"role"`
	IsActive     ActiveStatus `json:"isActive"`
	// Bookings holds ids of bookings made by this user, appended when a
	// booking is created. Cancellation does not remove entries.
	Bookings  []int64   `json:"bookings"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

package user

import (
	"context"
	"time"
)

const (
	RoleAdmin     = "admin"
	RolePersonnel = "personnel"
	RoleUser      = "user"
)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	Batch        string    `json:"batch"`
	Phone        string    `json:"phone,omitempty"`
	AssignedMPID *int64    `json:"assigned_mp_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]User, error)
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RolePersonnel || role == RoleUser
}

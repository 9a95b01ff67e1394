package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicatePhone = errors.New("phone number already registered")
)

// User roles.
const (
	RoleFarmer = "farmer"
	RoleAdmin  = "admin"
)

// User is a registered farmer (or admin) identified by phone number.
// swagger:model User
type User struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Village   string    `json:"village,omitempty"`
	District  string    `json:"district,omitempty"`
	CenterID  string    `json:"center_id,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRepository defines storage operations for users.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	Update(ctx context.Context, u *User) error
	List(ctx context.Context, p PaginationParams) ([]*User, int, error)
}

// ProfileService manages the authenticated user's profile.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, update *ProfileUpdate) (*User, error)
}

// ProfileUpdate carries the editable profile fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Village  *string
	District *string
	CenterID *string
}

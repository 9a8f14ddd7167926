package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role Role) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// User represents an account that can log in.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the public view of a user together with its member link.
type Profile struct {
	User     User
	MemberID *uuid.UUID
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	AccessToken string
	Profile     Profile
}

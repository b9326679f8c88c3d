package domain

import (
	"context"
	"time"
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type SignupInput struct {
	Username string `json:"username" validate:"required" msg:"Username is required"`
	Email    string `json:"email" validate:"required,email" msg:"Valid email is required"`
	Password string `json:"password" validate:"required,min=6" msg:"Password must be at least 6 characters"`
}

// LoginInput identifies the account by username or email; either may be empty.
type LoginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required" msg:"Password is required"`
}

// PasswordHasher is a one-way digest used to store and verify credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

type UserRepository interface {
	// FindByUsernameOrEmail matches either key, ignoring empty ones. It
	// returns (nil, nil) when no user matches.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*User, error)
	Create(ctx context.Context, user *User) error
}

type AccountService interface {
	Signup(ctx context.Context, in SignupInput) (userID string, err error)
	Login(ctx context.Context, in LoginInput) error
}

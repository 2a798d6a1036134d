// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput carries a partial profile update. Nil fields are left
// untouched; identity, password and creation time are not updatable here.
type UpdateProfileInput struct {
	UserID    uuid.UUID
	FirstName *string
	LastName  *string
	Email     *string
}

// ChangePasswordInput defines the data required to rotate a password.
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// --- Output DTOs ---

// LoginOutput returns the bearer token issued after a successful login.
type LoginOutput struct {
	Token string
}

// UserUsecase defines the interface for user-account business operations.
// This is the contract that the delivery layer (API handlers, auth guard) depends on.
type UserUsecase interface {
	// Register creates a new account. The returned entity carries only the
	// password hash, never the plaintext.
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)

	// Login verifies credentials and issues a time-bounded bearer token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// ListUsers returns all user records. No pagination contract.
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// GetUser resolves a single user by id.
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// UpdateProfile applies the provided non-identity fields.
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error)

	// ChangePassword verifies the current password and persists a hash of
	// the new one, returning a confirmation message.
	ChangePassword(ctx context.Context, input *ChangePasswordInput) (string, error)

	// Remove deletes the account. Removing an unknown id is a silent no-op.
	Remove(ctx context.Context, id uuid.UUID) error
}

// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"playground/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UpdateResult reports how many rows an update matched and how many it changed,
// so callers can tell "no such row" apart from "already in that state".
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// UserRepository is the credential store for identities.
type UserRepository interface {
	// FindByID retrieves a single user by primary key.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUserID retrieves a single user by their login handle.
	FindByUserID(ctx context.Context, userID string) (*entity.User, error)

	// Create persists a new user. A unique email or userId collision is reported as a duplicate error.
	Create(ctx context.Context, user *entity.User) error

	// SetVerified updates the verification flag by userId and clears the expiry when verified.
	SetVerified(ctx context.Context, userID string, verified bool) (UpdateResult, error)

	// AddSocialProvider links a provider to the user owning email. Linking twice modifies nothing.
	AddSocialProvider(ctx context.Context, email string, provider entity.Provider) (UpdateResult, error)

	// DeleteExpiredUnverified removes unverified users whose verification window closed before now
	// and returns their userIds.
	DeleteExpiredUnverified(ctx context.Context, now time.Time) ([]string, error)
}

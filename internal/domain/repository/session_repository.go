package repository

import (
	"context"
	"errors"

	"playground/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no session matches.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository is the login registry.
type SessionRepository interface {
	// FindByID loads a session by primary key.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// FindMatching looks up the session for the exact (user, ip, device) triple.
	FindMatching(ctx context.Context, userRef uuid.UUID, ip string, device entity.Device) (*entity.Session, error)

	// Create inserts a session. A refresh token or triple collision is reported as a duplicate error.
	Create(ctx context.Context, session *entity.Session) error

	// UpdateRefreshToken stores a new refresh token on an existing session.
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error
}

package repository

import (
	"context"
	"errors"
	"time"

	"playground/internal/domain/entity"
)

// ErrVerificationCodeNotFound is returned when no live code exists for a user.
var ErrVerificationCodeNotFound = errors.New("verification code not found")

// VerificationCodeRepository persists one-time email codes.
type VerificationCodeRepository interface {
	// Create stores a code. ExpiresAt must already be set.
	Create(ctx context.Context, code *entity.VerificationCode) error

	// FindLatestActive returns the most recently issued code for userID that has not expired at now.
	FindLatestActive(ctx context.Context, userID string, now time.Time) (*entity.VerificationCode, error)

	// DeleteByUserID removes every code of a user, used once verification succeeds.
	DeleteByUserID(ctx context.Context, userID string) error

	// DeleteExpired evicts codes that expired before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

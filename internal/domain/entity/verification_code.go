package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultVerificationCodeTTL applies when a code is stored without an expiry.
const DefaultVerificationCodeTTL = 10 * time.Minute

// VerificationCode is a one-time code mailed to prove email ownership.
type VerificationCode struct {
	ID        uuid.UUID
	UserID    string    // The user's login handle, not the primary key.
	Code      string    // Six ASCII digits, zero padded.
	ExpiresAt time.Time // Issuance time plus the configured TTL.
	CreatedAt time.Time
}

// IsExpired reports whether the code is no longer usable at now.
func (c *VerificationCode) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

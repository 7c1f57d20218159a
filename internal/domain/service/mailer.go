package service

import (
	"context"
	"time"
)

// Mailer delivers transactional email.
type Mailer interface {
	// SendVerificationCode mails a verification code and its expiry to the address.
	SendVerificationCode(ctx context.Context, to, code string, expiresAt time.Time) error
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a login record keyed by (user, ip, device).
type Session struct {
	ID           uuid.UUID // Referenced by the sid claim of access tokens.
	UserRef      uuid.UUID // The owning User's primary key.
	RefreshToken string    // Globally unique; empty when a previous write never stored one.
	Device       Device
	IP           string
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LoginInfo is everything needed to find or register a session.
type LoginInfo struct {
	UserRef  uuid.UUID
	Device   Device
	IP       string
	Location string
}

package service

import (
	"time"

	"playground/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// AccessClaims is the claim set of an access token.
type AccessClaims struct {
	SessionID uuid.UUID   `json:"sid"`
	UserID    uuid.UUID   `json:"uid"`
	Role      entity.Role `json:"role"`
	Type      string      `json:"typ"`
	jwt.RegisteredClaims
}

// RefreshClaims is the claim set of a refresh token. It carries no role.
type RefreshClaims struct {
	UserID uuid.UUID `json:"uid"`
	Type   string    `json:"typ"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed access and refresh tokens.
type TokenService interface {
	// CreateAccessToken mints a short-lived token bound to a session.
	CreateAccessToken(sessionID, userID uuid.UUID, role entity.Role) (string, error)

	// CreateRefreshToken mints a long-lived token for a user.
	CreateRefreshToken(userID uuid.UUID) (string, error)

	// VerifyAccessToken fails with ErrTokenExpired or ErrTokenInvalid.
	// On ErrTokenExpired the decoded claims are still returned so the caller can attempt a refresh.
	VerifyAccessToken(token string) (*AccessClaims, error)

	// VerifyRefreshToken fails with ErrTokenExpired or ErrTokenInvalid.
	VerifyRefreshToken(token string) (*RefreshClaims, error)

	// AccessTokenTTL returns the lifetime of access tokens, used for the cookie max-age.
	AccessTokenTTL() time.Duration
}

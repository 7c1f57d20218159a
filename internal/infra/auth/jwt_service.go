// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"playground/config"
	"playground/internal/domain/entity"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/domain/service"
	"playground/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  []byte        // Secret key for signing access tokens.
	refreshSecret []byte        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
	now           func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	accessTTL, refreshTTL := time.Hour, 24*time.Hour
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL > 0 {
			refreshTTL = cfg.Auth.RefreshTokenTTL
		}
	}

	return &jwtService{
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}, nil
}

// CreateAccessToken mints an access token carrying the session, user and role.
func (s *jwtService) CreateAccessToken(sessionID, userID uuid.UUID, role entity.Role) (string, error) {
	claims := &service.AccessClaims{
		SessionID:        sessionID,
		UserID:           userID,
		Role:             role,
		Type:             service.TokenTypeAccess,
		RegisteredClaims: s.registeredClaims(userID, s.accessTTL),
	}

	return s.sign(claims, s.accessSecret)
}

// CreateRefreshToken mints a refresh token for a user.
func (s *jwtService) CreateRefreshToken(userID uuid.UUID) (string, error) {
	claims := &service.RefreshClaims{
		UserID:           userID,
		Type:             service.TokenTypeRefresh,
		RegisteredClaims: s.registeredClaims(userID, s.refreshTTL),
	}

	return s.sign(claims, s.refreshSecret)
}

// VerifyAccessToken parses an access token. Expired tokens return their claims with ErrTokenExpired.
func (s *jwtService) VerifyAccessToken(token string) (*service.AccessClaims, error) {
	claims := &service.AccessClaims{}
	if err := s.parse(token, claims, s.accessSecret); err != nil {
		if errors.Is(err, domainerrors.ErrTokenExpired) && claims.Type == service.TokenTypeAccess {
			return claims, err
		}

		return nil, err
	}

	if claims.Type != service.TokenTypeAccess {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("unexpected token type")
	}

	return claims, nil
}

// VerifyRefreshToken parses a refresh token.
func (s *jwtService) VerifyRefreshToken(token string) (*service.RefreshClaims, error) {
	claims := &service.RefreshClaims{}
	if err := s.parse(token, claims, s.refreshSecret); err != nil {
		return nil, err
	}

	if claims.Type != service.TokenTypeRefresh {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("unexpected token type")
	}

	return claims, nil
}

// AccessTokenTTL returns the configured duration for access tokens.
func (s *jwtService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

func (s *jwtService) registeredClaims(userID uuid.UUID, ttl time.Duration) jwt.RegisteredClaims {
	now := s.now()

	return jwt.RegisteredClaims{
		// jti keeps two tokens minted in the same second distinct.
		ID:        uuid.NewString(),
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (s *jwtService) sign(claims jwt.Claims, secret []byte) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

func (s *jwtService) parse(token string, claims jwt.Claims, secret []byte) error {
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err == nil {
		return nil
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		return domainerrors.ErrTokenExpired.WrapMessage(err.Error())
	}

	return domainerrors.ErrTokenInvalid.WrapMessage(err.Error())
}

package usecase

import (
	"context"

	"playground/internal/domain/entity"
	"playground/internal/domain/service"
)

// AuthResult is an authenticated request. RefreshedToken is set when the access token was re-minted.
type AuthResult struct {
	Claims         *service.AccessClaims
	RefreshedToken string
}

// SessionUsecase registers login sessions and authenticates access tokens.
type SessionUsecase interface {
	// CheckAndRegister returns the session for the (user, ip, device) triple, creating it when absent.
	CheckAndRegister(ctx context.Context, info entity.LoginInfo) (*entity.Session, error)
	// Authenticate verifies an access token, re-minting it through the session's refresh token when expired.
	Authenticate(ctx context.Context, accessToken string) (*AuthResult, error)
}

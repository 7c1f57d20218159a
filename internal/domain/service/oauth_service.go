package service

import (
	"context"

	"playground/internal/domain/entity"
)

// OAuthProfile is a provider profile normalized into one shape.
type OAuthProfile struct {
	Provider    entity.Provider
	ExternalID  string // The provider's stable account id.
	Email       string
	DisplayName string // Nickname or name as shown by the provider.
	Name        string // Legal name when the provider exposes it.
	AvatarURL   string
	Gender      string // Lowercased provider gender code, empty when unknown.
	Birth       string // YYYYMMDD when the provider exposes it.
}

// OAuthProvider hides one provider's protocol behind the authorization code flow.
type OAuthProvider interface {
	// Provider returns which provider this adapter speaks to.
	Provider() entity.Provider

	// AuthCodeURL builds the consent page URL carrying state.
	AuthCodeURL(state string) string

	// ExchangeCode trades an authorization code for a provider access token.
	// A non-success provider response is reported as ErrUpstreamAuth.
	ExchangeCode(ctx context.Context, code, state string) (string, error)

	// FetchProfile calls the provider's user info endpoint.
	FetchProfile(ctx context.Context, accessToken string) (*OAuthProfile, error)
}

// OAuthProviderRegistry resolves the adapter for a provider.
type OAuthProviderRegistry interface {
	Get(provider entity.Provider) (OAuthProvider, bool)
}

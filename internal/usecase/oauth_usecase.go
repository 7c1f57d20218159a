package usecase

import (
	"context"

	"playground/internal/domain/entity"
	"playground/internal/domain/service"
)

// OAuthCallbackInput is what a provider redirect delivers, plus the browser's user agent.
type OAuthCallbackInput struct {
	Provider  entity.Provider
	Code      string
	State     string
	UserAgent string
}

// SocialSignupInput creates an identity that logs in through a provider only.
type SocialSignupInput struct {
	Provider  entity.Provider
	Username  string
	Email     string
	Birth     string
	UserID    string
	Gender    entity.Gender
	ImgURL    string
	Alarms    entity.Alarms
	Language  entity.Language
	DarkMode  bool
	IP        string
	Location  string
	UserAgent string
}

// KakaoCallbackOutput holds either a completed login or the profile of an unregistered user.
type KakaoCallbackOutput struct {
	Login   *LoginOutput
	Profile *service.OAuthProfile
}

// NaverCallbackOutput is the login of the identity created from a Naver profile.
type NaverCallbackOutput struct {
	Login  *LoginOutput
	UserID string
}

// OAuthUsecase covers OAuth login, linking and provider-specific signup.
type OAuthUsecase interface {
	// AuthorizeURL returns the provider consent page for state.
	AuthorizeURL(provider entity.Provider, state string) (string, error)
	// Login signs in an existing identity by email, linking the provider if needed.
	// It never creates an identity.
	Login(ctx context.Context, input OAuthCallbackInput) (*LoginOutput, error)
	KakaoCallback(ctx context.Context, input OAuthCallbackInput) (*KakaoCallbackOutput, error)
	NaverCallback(ctx context.Context, input OAuthCallbackInput) (*NaverCallbackOutput, error)
	// SocialSignup registers a verified identity with the provider pre-linked and logs it in.
	SocialSignup(ctx context.Context, input *SocialSignupInput) (*LoginOutput, error)
}

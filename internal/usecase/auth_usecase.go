// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"playground/internal/domain/entity"
)

// --- Input DTOs ---

// CheckEmailInput asks whether an email can be used, optionally for a social provider.
type CheckEmailInput struct {
	Email  string
	Social entity.Provider
}

// SignupInput carries a local registration request.
type SignupInput struct {
	Username string
	Email    string
	Birth    string
	Password string
	UserID   string
	ImgURL   string
	Alarms   entity.Alarms
	Language entity.Language
	DarkMode bool
	Gender   entity.Gender
	Location string
	IP       string
}

// VerifyCodeInput identifies the user by UserID or, when empty, by Email.
type VerifyCodeInput struct {
	Code   string
	UserID string
	Email  string
}

// RequestCodeInput identifies the user by UserID or, when empty, by Email.
type RequestCodeInput struct {
	UserID string
	Email  string
}

// LoginInput carries a password login. Either UserID or Email identifies the user.
type LoginInput struct {
	UserID    string
	Email     string
	Password  string
	IP        string
	Location  string
	UserAgent string
}

// IntegrateSocialInput links a provider to the identity owning Email.
type IntegrateSocialInput struct {
	Social entity.Provider
	Email  string
}

// --- Output DTOs ---

// LoginOutput is the result of any successful login.
type LoginOutput struct {
	User        *entity.User
	Session     *entity.Session
	AccessToken string
}

// AuthUsecase covers local registration, email verification and password login.
type AuthUsecase interface {
	CheckExistingEmail(ctx context.Context, input CheckEmailInput) error
	CheckExistingUserID(ctx context.Context, userID string) error
	Signup(ctx context.Context, input *SignupInput) (*entity.User, error)
	VerifyCode(ctx context.Context, input VerifyCodeInput) error
	RequestCode(ctx context.Context, input RequestCodeInput) error
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	IntegrateSocial(ctx context.Context, input IntegrateSocialInput) error
}

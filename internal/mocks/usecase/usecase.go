// Package usecase provides testify mocks of the use case interfaces.
package usecase

import (
	"context"

	"playground/internal/domain/entity"
	"playground/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TestingT is the subset of *testing.T the constructors need.
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m interface{ AssertExpectations(mock.TestingT) bool }, t TestingT) {
	t.Cleanup(func() { m.AssertExpectations(t) })
}

func loginOutput(args mock.Arguments) (*usecase.LoginOutput, error) {
	out, _ := args.Get(0).(*usecase.LoginOutput)

	return out, args.Error(1)
}

// --- AuthUsecase ---

type MockAuthUsecase struct{ mock.Mock }

func NewMockAuthUsecase(t TestingT) *MockAuthUsecase {
	m := &MockAuthUsecase{}
	m.Test(t)
	register(m, t)

	return m
}

func (m *MockAuthUsecase) CheckExistingEmail(ctx context.Context, input usecase.CheckEmailInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthUsecase) CheckExistingUserID(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthUsecase) Signup(ctx context.Context, input *usecase.SignupInput) (*entity.User, error) {
	args := m.Called(ctx, input)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockAuthUsecase) VerifyCode(ctx context.Context, input usecase.VerifyCodeInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthUsecase) RequestCode(ctx context.Context, input usecase.RequestCodeInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	return loginOutput(m.Called(ctx, input))
}

func (m *MockAuthUsecase) IntegrateSocial(ctx context.Context, input usecase.IntegrateSocialInput) error {
	return m.Called(ctx, input).Error(0)
}

// --- OAuthUsecase ---

type MockOAuthUsecase struct{ mock.Mock }

func NewMockOAuthUsecase(t TestingT) *MockOAuthUsecase {
	m := &MockOAuthUsecase{}
	m.Test(t)
	register(m, t)

	return m
}

func (m *MockOAuthUsecase) AuthorizeURL(provider entity.Provider, state string) (string, error) {
	args := m.Called(provider, state)

	return args.String(0), args.Error(1)
}

func (m *MockOAuthUsecase) Login(ctx context.Context, input usecase.OAuthCallbackInput) (*usecase.LoginOutput, error) {
	return loginOutput(m.Called(ctx, input))
}

func (m *MockOAuthUsecase) KakaoCallback(ctx context.Context, input usecase.OAuthCallbackInput) (*usecase.KakaoCallbackOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.KakaoCallbackOutput)

	return out, args.Error(1)
}

func (m *MockOAuthUsecase) NaverCallback(ctx context.Context, input usecase.OAuthCallbackInput) (*usecase.NaverCallbackOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.NaverCallbackOutput)

	return out, args.Error(1)
}

func (m *MockOAuthUsecase) SocialSignup(ctx context.Context, input *usecase.SocialSignupInput) (*usecase.LoginOutput, error) {
	return loginOutput(m.Called(ctx, input))
}

// --- SessionUsecase ---

type MockSessionUsecase struct{ mock.Mock }

func NewMockSessionUsecase(t TestingT) *MockSessionUsecase {
	m := &MockSessionUsecase{}
	m.Test(t)
	register(m, t)

	return m
}

func (m *MockSessionUsecase) CheckAndRegister(ctx context.Context, info entity.LoginInfo) (*entity.Session, error) {
	args := m.Called(ctx, info)
	session, _ := args.Get(0).(*entity.Session)

	return session, args.Error(1)
}

func (m *MockSessionUsecase) Authenticate(ctx context.Context, accessToken string) (*usecase.AuthResult, error) {
	args := m.Called(ctx, accessToken)
	res, _ := args.Get(0).(*usecase.AuthResult)

	return res, args.Error(1)
}

// --- ProfileUsecase ---

type MockProfileUsecase struct{ mock.Mock }

func NewMockProfileUsecase(t TestingT) *MockProfileUsecase {
	m := &MockProfileUsecase{}
	m.Test(t)
	register(m, t)

	return m
}

func (m *MockProfileUsecase) FetchUserInfo(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockProfileUsecase) SaveSettings(ctx context.Context, input usecase.SaveSettingsInput) error {
	return m.Called(ctx, input).Error(0)
}

// --- MaintenanceUsecase ---

type MockMaintenanceUsecase struct{ mock.Mock }

func NewMockMaintenanceUsecase(t TestingT) *MockMaintenanceUsecase {
	m := &MockMaintenanceUsecase{}
	m.Test(t)
	register(m, t)

	return m
}

func (m *MockMaintenanceUsecase) Purge(ctx context.Context) (*usecase.PurgeResult, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*usecase.PurgeResult)

	return res, args.Error(1)
}

// Package service provides testify mocks of the domain service interfaces.
package service

import (
	"context"
	"sync"
	"time"

	"playground/internal/domain/entity"
	"playground/internal/domain/service"

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

// --- PasswordHasher ---

type MockPasswordHasher struct{ mock.Mock }

func NewMockPasswordHasher(t TestingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Test(t)
	register(m, t)

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// --- TokenService ---

type MockTokenService struct{ mock.Mock }

func NewMockTokenService(t TestingT) *MockTokenService {
	m := &MockTokenService{}
	m.Test(t)
	register(m, t)

	return m
}

func (m *MockTokenService) CreateAccessToken(sessionID, userID uuid.UUID, role entity.Role) (string, error) {
	args := m.Called(sessionID, userID, role)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) CreateRefreshToken(userID uuid.UUID) (string, error) {
	args := m.Called(userID)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) VerifyAccessToken(token string) (*service.AccessClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*service.AccessClaims)

	return claims, args.Error(1)
}

func (m *MockTokenService) VerifyRefreshToken(token string) (*service.RefreshClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*service.RefreshClaims)

	return claims, args.Error(1)
}

func (m *MockTokenService) AccessTokenTTL() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

// --- SecretGenerator ---

type MockSecretGenerator struct{ mock.Mock }

func NewMockSecretGenerator(t TestingT) *MockSecretGenerator {
	m := &MockSecretGenerator{}
	m.Test(t)
	register(m, t)

	return m
}

func (m *MockSecretGenerator) VerificationCode() (string, error) {
	args := m.Called()

	return args.String(0), args.Error(1)
}

func (m *MockSecretGenerator) RandomPassword() (string, error) {
	args := m.Called()

	return args.String(0), args.Error(1)
}

// --- Mailer ---

type MockMailer struct{ mock.Mock }

func NewMockMailer(t TestingT) *MockMailer {
	m := &MockMailer{}
	m.Test(t)
	register(m, t)

	return m
}

func (m *MockMailer) SendVerificationCode(ctx context.Context, to, code string, expiresAt time.Time) error {
	return m.Called(ctx, to, code, expiresAt).Error(0)
}

// --- ImageStore ---

type MockImageStore struct{ mock.Mock }

func NewMockImageStore(t TestingT) *MockImageStore {
	m := &MockImageStore{}
	m.Test(t)
	register(m, t)

	return m
}

func (m *MockImageStore) Upload(ctx context.Context, owner, imgURL string) (string, error) {
	args := m.Called(ctx, owner, imgURL)

	return args.String(0), args.Error(1)
}

// --- DeviceDetector ---

// StaticDeviceDetector reports the same device for every user agent.
type StaticDeviceDetector struct {
	Device entity.Device
}

func (d StaticDeviceDetector) Detect(string) entity.Device {
	return d.Device
}

// --- AuthMetrics ---

// AuthMetricsRecorder counts recorded outcomes keyed as "<kind>:<label>:<result>".
type AuthMetricsRecorder struct {
	mu     sync.Mutex
	Counts map[string]int64
}

func NewAuthMetricsRecorder() *AuthMetricsRecorder {
	return &AuthMetricsRecorder{Counts: map[string]int64{}}
}

func (r *AuthMetricsRecorder) add(key string, n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Counts[key] += n
}

// Count returns the total recorded under key.
func (r *AuthMetricsRecorder) Count(key string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.Counts[key]
}

func (r *AuthMetricsRecorder) RecordSignup(provider, result string) {
	r.add("signup:"+provider+":"+result, 1)
}

func (r *AuthMetricsRecorder) RecordLogin(provider, result string) {
	r.add("login:"+provider+":"+result, 1)
}

func (r *AuthMetricsRecorder) RecordTokenRefresh(result string) {
	r.add("refresh:"+result, 1)
}

func (r *AuthMetricsRecorder) RecordPurged(kind string, count int64) {
	r.add("purged:"+kind, count)
}

// --- OAuth ---

type MockOAuthProvider struct{ mock.Mock }

func NewMockOAuthProvider(t TestingT) *MockOAuthProvider {
	m := &MockOAuthProvider{}
	m.Test(t)
	register(m, t)

	return m
}

func (m *MockOAuthProvider) Provider() entity.Provider {
	return m.Called().Get(0).(entity.Provider)
}

func (m *MockOAuthProvider) AuthCodeURL(state string) string {
	return m.Called(state).String(0)
}

func (m *MockOAuthProvider) ExchangeCode(ctx context.Context, code, state string) (string, error) {
	args := m.Called(ctx, code, state)

	return args.String(0), args.Error(1)
}

func (m *MockOAuthProvider) FetchProfile(ctx context.Context, accessToken string) (*service.OAuthProfile, error) {
	args := m.Called(ctx, accessToken)
	profile, _ := args.Get(0).(*service.OAuthProfile)

	return profile, args.Error(1)
}

// ProviderRegistry is a map backed OAuthProviderRegistry.
type ProviderRegistry map[entity.Provider]service.OAuthProvider

func (r ProviderRegistry) Get(provider entity.Provider) (service.OAuthProvider, bool) {
	p, ok := r[provider]

	return p, ok
}

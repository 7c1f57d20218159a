// Package repository provides testify mocks of the domain repository interfaces.
package repository

import (
	"context"
	"time"

	"playground/internal/domain/entity"
	"playground/internal/domain/repository"

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

// --- UserRepository ---

type MockUserRepository struct{ mock.Mock }

func NewMockUserRepository(t TestingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	register(m, t)

	return m
}

func (m *MockUserRepository) user(args mock.Arguments) (*entity.User, error) {
	u, _ := args.Get(0).(*entity.User)

	return u, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *MockUserRepository) FindByUserID(ctx context.Context, userID string) (*entity.User, error) {
	return m.user(m.Called(ctx, userID))
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) SetVerified(ctx context.Context, userID string, verified bool) (repository.UpdateResult, error) {
	args := m.Called(ctx, userID, verified)

	return args.Get(0).(repository.UpdateResult), args.Error(1)
}

func (m *MockUserRepository) AddSocialProvider(ctx context.Context, email string, provider entity.Provider) (repository.UpdateResult, error) {
	args := m.Called(ctx, email, provider)

	return args.Get(0).(repository.UpdateResult), args.Error(1)
}

func (m *MockUserRepository) DeleteExpiredUnverified(ctx context.Context, now time.Time) ([]string, error) {
	args := m.Called(ctx, now)
	ids, _ := args.Get(0).([]string)

	return ids, args.Error(1)
}

// --- VerificationCodeRepository ---

type MockVerificationCodeRepository struct{ mock.Mock }

func NewMockVerificationCodeRepository(t TestingT) *MockVerificationCodeRepository {
	m := &MockVerificationCodeRepository{}
	m.Test(t)
	register(m, t)

	return m
}

func (m *MockVerificationCodeRepository) Create(ctx context.Context, code *entity.VerificationCode) error {
	return m.Called(ctx, code).Error(0)
}

func (m *MockVerificationCodeRepository) FindLatestActive(ctx context.Context, userID string, now time.Time) (*entity.VerificationCode, error) {
	args := m.Called(ctx, userID, now)
	code, _ := args.Get(0).(*entity.VerificationCode)

	return code, args.Error(1)
}

func (m *MockVerificationCodeRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockVerificationCodeRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)

	return args.Get(0).(int64), args.Error(1)
}

// --- SessionRepository ---

type MockSessionRepository struct{ mock.Mock }

func NewMockSessionRepository(t TestingT) *MockSessionRepository {
	m := &MockSessionRepository{}
	m.Test(t)
	register(m, t)

	return m
}

func (m *MockSessionRepository) session(args mock.Arguments) (*entity.Session, error) {
	s, _ := args.Get(0).(*entity.Session)

	return s, args.Error(1)
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	return m.session(m.Called(ctx, id))
}

func (m *MockSessionRepository) FindMatching(ctx context.Context, userRef uuid.UUID, ip string, device entity.Device) (*entity.Session, error) {
	return m.session(m.Called(ctx, userRef, ip, device))
}

func (m *MockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockSessionRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error {
	return m.Called(ctx, id, refreshToken).Error(0)
}

// --- SettingsRepository ---

type MockSettingsRepository struct{ mock.Mock }

func NewMockSettingsRepository(t TestingT) *MockSettingsRepository {
	m := &MockSettingsRepository{}
	m.Test(t)
	register(m, t)

	return m
}

func (m *MockSettingsRepository) Create(ctx context.Context, settings *entity.UserSettings) error {
	return m.Called(ctx, settings).Error(0)
}

func (m *MockSettingsRepository) FindByUserID(ctx context.Context, userID string) (*entity.UserSettings, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*entity.UserSettings)

	return s, args.Error(1)
}

func (m *MockSettingsRepository) DeleteByUserIDs(ctx context.Context, userIDs []string) (int64, error) {
	args := m.Called(ctx, userIDs)

	return args.Get(0).(int64), args.Error(1)
}

// --- Transactions ---

// MockTransactionManager runs the callback against Factory without a real transaction.
// When the callback fails nothing is undone, so tests assert on the returned error instead.
type MockTransactionManager struct {
	Factory repository.RepositoryFactory
}

func (m *MockTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}

// Factory hands out the same mocks inside and outside transactions.
type Factory struct {
	Users    repository.UserRepository
	Codes    repository.VerificationCodeRepository
	Settings repository.SettingsRepository
	Sessions repository.SessionRepository
}

func (f *Factory) UserRepo() repository.UserRepository                         { return f.Users }
func (f *Factory) VerificationCodeRepo() repository.VerificationCodeRepository { return f.Codes }
func (f *Factory) SettingsRepo() repository.SettingsRepository                 { return f.Settings }
func (f *Factory) SessionRepo() repository.SessionRepository                   { return f.Sessions }

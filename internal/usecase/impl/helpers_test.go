package impl

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"playground/config"
	"playground/internal/domain/entity"
	mockRepo "playground/internal/mocks/repository"
	mockSvc "playground/internal/mocks/service"
	mockUsecase "playground/internal/mocks/usecase"

	"github.com/google/uuid"
)

var (
	fixedNow   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testDevice = entity.Device{Type: entity.DeviceDesktop, OS: "Windows", Browser: "Chrome"}
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:           10,
			AccessTokenTTL:       time.Hour,
			RefreshTokenTTL:      24 * time.Hour,
			VerificationCodeTTL:  10 * time.Minute,
			UnverifiedAccountTTL: 24 * time.Hour,
		},
	}
}

// fixtures holds every double a use case test may need.
type fixtures struct {
	userRepo     *mockRepo.MockUserRepository
	codeRepo     *mockRepo.MockVerificationCodeRepository
	settingsRepo *mockRepo.MockSettingsRepository
	sessionRepo  *mockRepo.MockSessionRepository
	txManager    *mockRepo.MockTransactionManager
	hasher       *mockSvc.MockPasswordHasher
	tokens       *mockSvc.MockTokenService
	secrets      *mockSvc.MockSecretGenerator
	mailer       *mockSvc.MockMailer
	images       *mockSvc.MockImageStore
	metrics      *mockSvc.AuthMetricsRecorder
	sessions     *mockUsecase.MockSessionUsecase
	detector     mockSvc.StaticDeviceDetector
}

func newFixtures(t *testing.T) *fixtures {
	f := &fixtures{
		userRepo:     mockRepo.NewMockUserRepository(t),
		codeRepo:     mockRepo.NewMockVerificationCodeRepository(t),
		settingsRepo: mockRepo.NewMockSettingsRepository(t),
		sessionRepo:  mockRepo.NewMockSessionRepository(t),
		hasher:       mockSvc.NewMockPasswordHasher(t),
		tokens:       mockSvc.NewMockTokenService(t),
		secrets:      mockSvc.NewMockSecretGenerator(t),
		mailer:       mockSvc.NewMockMailer(t),
		images:       mockSvc.NewMockImageStore(t),
		metrics:      mockSvc.NewAuthMetricsRecorder(),
		sessions:     mockUsecase.NewMockSessionUsecase(t),
		detector:     mockSvc.StaticDeviceDetector{Device: testDevice},
	}
	f.txManager = &mockRepo.MockTransactionManager{Factory: &mockRepo.Factory{
		Users:    f.userRepo,
		Codes:    f.codeRepo,
		Settings: f.settingsRepo,
		Sessions: f.sessionRepo,
	}}

	return f
}

func verifiedUser() *entity.User {
	return &entity.User{
		ID:           uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Username:     "Alice",
		Email:        "alice@example.com",
		UserID:       "alice_01",
		PasswordHash: "hashed",
		Role:         entity.RoleUser,
		IsVerified:   true,
	}
}

func testSession(user *entity.User) *entity.Session {
	return &entity.Session{
		ID:           uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		UserRef:      user.ID,
		RefreshToken: "refresh-token",
		Device:       testDevice,
		IP:           "10.0.0.1",
		Location:     "Seoul",
	}
}

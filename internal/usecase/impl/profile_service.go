package impl

import (
	"context"
	"log/slog"

	deliverycontext "playground/internal/delivery/context"
	"playground/internal/domain/entity"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/domain/repository"
	"playground/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo     repository.UserRepository
	settingsRepo repository.SettingsRepository
	logger       *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	SettingsRepo repository.SettingsRepository
	Logger       *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo:     params.UserRepo,
		settingsRepo: params.SettingsRepo,
		logger:       params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// FetchUserInfo returns the identity behind an authenticated session.
func (srv *profileService) FetchUserInfo(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrNotFound.WithDetails("user not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch user")
	}

	return user, nil
}

// SaveSettings stores preferences for an existing identity that has none yet.
func (srv *profileService) SaveSettings(ctx context.Context, input usecase.SaveSettingsInput) error {
	if err := requireFields(field{"userId", input.UserID}); err != nil {
		return err
	}

	_, err := srv.userRepo.FindByUserID(ctx, input.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrNotFound.WithDetails("user not found")
	}
	if err != nil {
		return errors.Wrap(err, "failed to look up userId")
	}

	settings := entity.NewUserSettings(input.UserID, input.Alarms, input.Language, input.DarkMode)
	if err := srv.settingsRepo.Create(ctx, settings); err != nil {
		if errors.Is(err, domainerrors.ErrSettingsExist) {
			return err
		}

		return errors.Wrap(err, "failed to save settings")
	}
	srv.log(ctx).Debug("Saved user settings", slog.String("user_id", input.UserID))

	return nil
}

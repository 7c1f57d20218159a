package impl

import (
	"context"
	"strings"
	"time"

	"playground/config"
	"playground/internal/domain/entity"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/domain/repository"
	"playground/internal/domain/service"
	"playground/internal/usecase"

	"github.com/pkg/errors"
)

const (
	defaultUnverifiedAccountTTL = 24 * time.Hour
)

// loginIssuer finishes every login flow: session registration, then an access token bound to it.
type loginIssuer struct {
	sessions     usecase.SessionUsecase
	tokenService service.TokenService
	detector     service.DeviceDetector
}

func (l loginIssuer) issue(ctx context.Context, user *entity.User, ip, location, userAgent string) (*usecase.LoginOutput, error) {
	session, err := l.sessions.CheckAndRegister(ctx, entity.LoginInfo{
		UserRef:  user.ID,
		Device:   l.detector.Detect(userAgent),
		IP:       ip,
		Location: location,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to register session")
	}

	accessToken, err := l.tokenService.CreateAccessToken(session.ID, user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create access token")
	}

	return &usecase.LoginOutput{User: user, Session: session, AccessToken: accessToken}, nil
}

// ensureAvailable checks email before userId, matching the order duplicates are reported in.
func ensureAvailable(ctx context.Context, userRepo repository.UserRepository, email, userID string) error {
	_, err := userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return domainerrors.ErrEmailExists
	case !errors.Is(err, repository.ErrUserNotFound):
		return errors.Wrap(err, "failed to look up email")
	}

	_, err = userRepo.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		return domainerrors.ErrUserIDExists
	case !errors.Is(err, repository.ErrUserNotFound):
		return errors.Wrap(err, "failed to look up userId")
	}

	return nil
}

// linkProvider adds provider to user unless already linked.
func linkProvider(ctx context.Context, userRepo repository.UserRepository, user *entity.User, provider entity.Provider) error {
	if user.HasProvider(provider) {
		return nil
	}

	res, err := userRepo.AddSocialProvider(ctx, user.Email, provider)
	if err != nil {
		return errors.Wrap(err, "failed to link provider")
	}
	switch {
	case res.Matched == 0:
		return domainerrors.ErrNotFound.WithDetails("no identity for email")
	case res.Modified == 0:
		return domainerrors.ErrNoContent
	}
	user.SocialProviders = append(user.SocialProviders, provider)

	return nil
}

// field is one named required input.
type field struct {
	name  string
	value string
}

// requireFields reports every empty field by name.
func requireFields(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return domainerrors.ErrMissingFields.WithDetails(strings.Join(missing, ", "))
	}

	return nil
}

func verificationCodeTTL(cfg *config.Config) time.Duration {
	if cfg != nil && cfg.Auth != nil && cfg.Auth.VerificationCodeTTL > 0 {
		return cfg.Auth.VerificationCodeTTL
	}

	return entity.DefaultVerificationCodeTTL
}

func unverifiedAccountTTL(cfg *config.Config) time.Duration {
	if cfg != nil && cfg.Auth != nil && cfg.Auth.UnverifiedAccountTTL > 0 {
		return cfg.Auth.UnverifiedAccountTTL
	}

	return defaultUnverifiedAccountTTL
}

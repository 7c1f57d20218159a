// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "playground/internal/delivery/context"
	"playground/internal/domain/entity"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/domain/repository"
	"playground/internal/domain/service"
	"playground/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	sessionRepo  repository.SessionRepository
	tokenService service.TokenService
	metrics      service.AuthMetrics
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	SessionRepo  repository.SessionRepository
	TokenService service.TokenService
	Metrics      service.AuthMetrics
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		sessionRepo:  params.SessionRepo,
		tokenService: params.TokenService,
		metrics:      params.Metrics,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CheckAndRegister reuses the session stored for the triple while its refresh token is still valid.
// A missing or unusable refresh token is replaced in place, so the triple never fans out into new rows.
func (srv *sessionService) CheckAndRegister(ctx context.Context, info entity.LoginInfo) (*entity.Session, error) {
	existing, err := srv.sessionRepo.FindMatching(ctx, info.UserRef, info.IP, info.Device)
	switch {
	case err == nil:
		return srv.reuse(ctx, existing)
	case !errors.Is(err, repository.ErrSessionNotFound):
		return nil, errors.Wrap(err, "failed to find matching session")
	}

	refreshToken, err := srv.tokenService.CreateRefreshToken(info.UserRef)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create refresh token")
	}

	session := &entity.Session{
		UserRef:      info.UserRef,
		RefreshToken: refreshToken,
		Device:       info.Device,
		IP:           info.IP,
		Location:     info.Location,
	}
	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		if !errors.Is(err, domainerrors.ErrDuplicate) {
			return nil, errors.Wrap(err, "failed to create session")
		}

		// A concurrent login for the same triple won the insert.
		srv.log(ctx).Debug("Session insert lost race, reusing winner", slog.String("device", info.Device.String()))
		winner, findErr := srv.sessionRepo.FindMatching(ctx, info.UserRef, info.IP, info.Device)
		if findErr != nil {
			return nil, errors.Wrap(findErr, "failed to reload session after duplicate insert")
		}

		return srv.reuse(ctx, winner)
	}

	srv.log(ctx).Info("Registered new session",
		slog.Any("session_id", session.ID),
		slog.Any("user_ref", session.UserRef),
		slog.String("device", session.Device.String()),
	)

	return session, nil
}

func (srv *sessionService) reuse(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	if session.RefreshToken != "" {
		if _, err := srv.tokenService.VerifyRefreshToken(session.RefreshToken); err == nil {
			return session, nil
		}
	}

	refreshToken, err := srv.tokenService.CreateRefreshToken(session.UserRef)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create refresh token")
	}
	if err := srv.sessionRepo.UpdateRefreshToken(ctx, session.ID, refreshToken); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}
	session.RefreshToken = refreshToken

	srv.log(ctx).Debug("Replaced refresh token on existing session", slog.Any("session_id", session.ID))

	return session, nil
}

// Authenticate accepts a valid access token as is. An expired one is re-minted for the same session
// when the session's refresh token verifies and belongs to the same user; anything else is rejected.
func (srv *sessionService) Authenticate(ctx context.Context, accessToken string) (*usecase.AuthResult, error) {
	claims, err := srv.tokenService.VerifyAccessToken(accessToken)
	if err == nil {
		return &usecase.AuthResult{Claims: claims}, nil
	}
	if !errors.Is(err, domainerrors.ErrTokenExpired) || claims == nil {
		return nil, err
	}

	refreshed, err := srv.refresh(ctx, claims)
	if err != nil {
		srv.metrics.RecordTokenRefresh(resultFailure)
		srv.log(ctx).Warn("Access token refresh rejected", slog.Any("session_id", claims.SessionID), slog.Any("error", err))

		return nil, err
	}
	srv.metrics.RecordTokenRefresh(resultSuccess)

	return refreshed, nil
}

func (srv *sessionService) refresh(ctx context.Context, expired *service.AccessClaims) (*usecase.AuthResult, error) {
	session, err := srv.sessionRepo.FindByID(ctx, expired.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to load session for refresh")
	}
	if session.RefreshToken == "" {
		return nil, domainerrors.ErrSessionNotFound
	}

	refreshClaims, err := srv.tokenService.VerifyRefreshToken(session.RefreshToken)
	if err != nil {
		return nil, err
	}
	if refreshClaims.UserID != expired.UserID || session.UserRef != expired.UserID {
		return nil, domainerrors.ErrTokenInvalid.WithDetails("refresh token subject mismatch")
	}

	token, err := srv.tokenService.CreateAccessToken(session.ID, expired.UserID, expired.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create access token")
	}
	claims, err := srv.tokenService.VerifyAccessToken(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode refreshed access token")
	}

	return &usecase.AuthResult{Claims: claims, RefreshedToken: token}, nil
}

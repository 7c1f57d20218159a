package impl

import (
	"context"
	"log/slog"
	"time"

	"playground/internal/domain/repository"
	"playground/internal/domain/service"
	"playground/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// maintenanceService implements the MaintenanceUsecase interface.
type maintenanceService struct {
	txManager repository.TransactionManager
	codeRepo  repository.VerificationCodeRepository
	metrics   service.AuthMetrics
	now       func() time.Time
	logger    *slog.Logger
}

// MaintenanceServiceParams holds dependencies for maintenanceService, injected by Fx.
type MaintenanceServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	CodeRepo  repository.VerificationCodeRepository
	Metrics   service.AuthMetrics
	Logger    *slog.Logger
}

// NewMaintenanceService is the constructor for maintenanceService.
func NewMaintenanceService(params MaintenanceServiceParams) usecase.MaintenanceUsecase {
	return &maintenanceService{
		txManager: params.TxManager,
		codeRepo:  params.CodeRepo,
		metrics:   params.Metrics,
		now:       time.Now,
		logger:    params.Logger,
	}
}

// Purge deletes expired verification codes, then expired unverified identities together with their settings.
func (srv *maintenanceService) Purge(ctx context.Context) (*usecase.PurgeResult, error) {
	now := srv.now()
	result := &usecase.PurgeResult{}

	codes, err := srv.codeRepo.DeleteExpired(ctx, now)
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete expired verification codes")
	}
	result.VerificationCodes = codes

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		userIDs, err := factory.UserRepo().DeleteExpiredUnverified(ctx, now)
		if err != nil {
			return err
		}
		if len(userIDs) == 0 {
			return nil
		}
		result.Users = int64(len(userIDs))

		settings, err := factory.SettingsRepo().DeleteByUserIDs(ctx, userIDs)
		if err != nil {
			return err
		}
		result.Settings = settings

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to purge unverified users")
	}

	srv.metrics.RecordPurged("verification_codes", result.VerificationCodes)
	srv.metrics.RecordPurged("users", result.Users)
	srv.metrics.RecordPurged("settings", result.Settings)

	if result.VerificationCodes+result.Users > 0 {
		srv.logger.Info("Purged expired records",
			slog.Int64("verification_codes", result.VerificationCodes),
			slog.Int64("users", result.Users),
			slog.Int64("settings", result.Settings),
		)
	}

	return result, nil
}

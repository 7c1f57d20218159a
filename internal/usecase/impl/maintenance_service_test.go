package impl

import (
	"context"
	"testing"
	"time"

	domainerrors "playground/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMaintenanceService(f *fixtures) *maintenanceService {
	srv := NewMaintenanceService(MaintenanceServiceParams{
		TxManager: f.txManager,
		CodeRepo:  f.codeRepo,
		Metrics:   f.metrics,
		Logger:    newDiscardLogger(),
	}).(*maintenanceService)
	srv.now = func() time.Time { return fixedNow }

	return srv
}

func TestMaintenanceService_Purge(t *testing.T) {
	ctx := context.Background()

	t.Run("removes codes, users and their settings", func(t *testing.T) {
		f := newFixtures(t)
		f.codeRepo.On("DeleteExpired", ctx, fixedNow).Return(int64(3), nil)
		f.userRepo.On("DeleteExpiredUnverified", ctx, fixedNow).Return([]string{"a_01", "b_01"}, nil)
		f.settingsRepo.On("DeleteByUserIDs", ctx, []string{"a_01", "b_01"}).Return(int64(2), nil)

		res, err := newTestMaintenanceService(f).Purge(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), res.VerificationCodes)
		assert.Equal(t, int64(2), res.Users)
		assert.Equal(t, int64(2), res.Settings)
		assert.Equal(t, int64(2), f.metrics.Count("purged:users"))
		assert.Equal(t, int64(3), f.metrics.Count("purged:verification_codes"))
	})

	t.Run("nothing expired", func(t *testing.T) {
		f := newFixtures(t)
		f.codeRepo.On("DeleteExpired", ctx, fixedNow).Return(int64(0), nil)
		f.userRepo.On("DeleteExpiredUnverified", ctx, fixedNow).Return([]string{}, nil)

		res, err := newTestMaintenanceService(f).Purge(ctx)
		require.NoError(t, err)
		assert.Zero(t, *res)
		f.settingsRepo.AssertNotCalled(t, "DeleteByUserIDs")
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixtures(t)
		f.codeRepo.On("DeleteExpired", ctx, fixedNow).Return(int64(0), domainerrors.ErrServerUnavailable)

		_, err := newTestMaintenanceService(f).Purge(ctx)
		assert.ErrorIs(t, err, domainerrors.ErrServerUnavailable)
	})
}

// Package worker runs the periodic maintenance delivery.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"playground/config"
	"playground/internal/delivery"
	deliverycontext "playground/internal/delivery/context"
	"playground/internal/domain/lifecycle"
	"playground/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type workerServer struct {
	interval    time.Duration
	logger      *slog.Logger
	maintenance usecase.MaintenanceUsecase

	started  atomic.Bool
	stopOnce sync.Once
	quit     chan struct{}
	done     chan struct{}
}

// ServerParams holds dependencies for the maintenance worker.
type ServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	Maintenance usecase.MaintenanceUsecase
}

// NewServer creates the worker that purges expired codes and abandoned signups.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := newWorker(params.Cfg, params.Logger, params.Maintenance)

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

func newWorker(cfg *config.Config, logger *slog.Logger, maintenance usecase.MaintenanceUsecase) *workerServer {
	interval := time.Minute
	if cfg.Worker != nil && cfg.Worker.CleanupInterval > 0 {
		interval = cfg.Worker.CleanupInterval
	}

	return &workerServer{
		interval:    interval,
		logger:      logger,
		maintenance: maintenance,
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Serve blocks until ctx is cancelled or the worker is stopped.
func (s *workerServer) Serve(ctx context.Context) error {
	s.started.Store(true)
	defer close(s.done)

	s.logger.Info("Starting maintenance worker", slog.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.quit:
			return nil
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *workerServer) runOnce(ctx context.Context) {
	logger := s.logger.With(slog.String("run_id", uuid.NewString()))
	runCtx, cancel := context.WithTimeout(deliverycontext.WithLogger(ctx, logger), lifecycle.DefaultTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.maintenance.Purge(runCtx)
	if err != nil {
		logger.Error("Maintenance purge failed", slog.Any("error", err))

		return
	}

	logger.Debug("Maintenance purge finished",
		slog.Int64("verification_codes", result.VerificationCodes),
		slog.Int64("users", result.Users),
		slog.Int64("settings", result.Settings),
		slog.Duration("elapsed", time.Since(start)),
	)
}

func (s *workerServer) stop(ctx context.Context) error {
	s.logger.Info("Shutting down maintenance worker")
	s.stopOnce.Do(func() { close(s.quit) })
	if !s.started.Load() {
		return nil
	}

	select {
	case <-s.done:
	case <-ctx.Done():
	}

	return nil
}

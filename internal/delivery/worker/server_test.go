package worker

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"playground/config"
	mockUsecase "playground/internal/mocks/usecase"
	"playground/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestWorker(t *testing.T, m *mockUsecase.MockMaintenanceUsecase) *workerServer {
	t.Helper()
	cfg := &config.Config{Worker: &config.WorkerConfig{CleanupInterval: 10 * time.Millisecond}}

	return newWorker(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), m)
}

func TestWorker_PurgesOnEveryTick(t *testing.T) {
	m := mockUsecase.NewMockMaintenanceUsecase(t)
	calls := make(chan struct{}, 8)
	m.On("Purge", mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case calls <- struct{}{}:
			default:
			}
		}).
		Return(&usecase.PurgeResult{VerificationCodes: 1}, nil)

	w := newTestWorker(t, m)
	served := make(chan error, 1)
	go func() { served <- w.Serve(context.Background()) }()

	for range 2 {
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatal("purge was not called")
		}
	}

	require.NoError(t, w.stop(context.Background()))
	assert.NoError(t, <-served)
}

func TestWorker_KeepsRunningAfterFailure(t *testing.T) {
	m := mockUsecase.NewMockMaintenanceUsecase(t)
	calls := make(chan struct{}, 8)
	m.On("Purge", mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case calls <- struct{}{}:
			default:
			}
		}).
		Return(nil, assert.AnError)

	w := newTestWorker(t, m)
	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- w.Serve(ctx) }()

	for range 2 {
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatal("purge was not retried")
		}
	}

	cancel()
	assert.NoError(t, <-served)
}

func TestWorker_StopBeforeServe(t *testing.T) {
	w := newTestWorker(t, mockUsecase.NewMockMaintenanceUsecase(t))

	assert.NoError(t, w.stop(context.Background()))
	assert.NoError(t, w.Serve(context.Background()))
}

func TestNewWorker_DefaultInterval(t *testing.T) {
	w := newWorker(&config.Config{}, slog.Default(), nil)

	assert.Equal(t, time.Minute, w.interval)
}

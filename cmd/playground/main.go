package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"playground/config"
	"playground/internal/delivery"
	"playground/internal/delivery/api"
	"playground/internal/delivery/api/cookie"
	apimiddleware "playground/internal/delivery/api/middleware"
	"playground/internal/delivery/api/router/handler"
	"playground/internal/delivery/middleware"
	"playground/internal/delivery/worker"
	"playground/internal/domain/service"
	"playground/internal/infra/auth"
	"playground/internal/infra/auth/oauth"
	"playground/internal/infra/device"
	logs "playground/internal/infra/log"
	"playground/internal/infra/mail"
	"playground/internal/infra/metrics"
	"playground/internal/infra/persistence/postgres"
	"playground/internal/infra/storage"
	"playground/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectMetrics(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewVerificationCodeRepository,
			postgres.NewSessionRepository,
			postgres.NewSettingsRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			auth.NewSecretGenerator,
			oauth.NewProviderRegistry,
			mail.NewSMTPMailer,
			storage.New,
			device.NewDetector,
		),
	)
}

// injectMetrics shares one collector between the use cases, the HTTP middleware and the scrape endpoint.
func injectMetrics() fx.Option {
	return fx.Options(
		fx.Provide(
			metrics.NewRegistry,
			metrics.NewCollector,
			func(c *metrics.Collector) service.AuthMetrics { return c },
			func(c *metrics.Collector) middleware.HTTPObserver { return c },
			fx.Annotate(
				func(c *metrics.Collector) http.Handler { return c.Handler() },
				fx.ResultTags(`name:"metricsHandler"`),
			),
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewOAuthService,
			impl.NewSessionService,
			impl.NewProfileService,
			impl.NewMaintenanceService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			cookie.NewJar,
			apimiddleware.NewAuthMiddleware,
			apimiddleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewOAuthHandler,
			handler.NewUserHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}

// Package api is the HTTP delivery.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"playground/config"
	"playground/internal/delivery"
	apimiddleware "playground/internal/delivery/api/middleware"
	"playground/internal/delivery/api/router"
	"playground/internal/delivery/api/validator"
	"playground/internal/delivery/middleware"
	"playground/internal/domain/lifecycle"
	"playground/internal/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

type apiServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// ServerParams holds dependencies for HTTP server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc              fx.Lifecycle
	Cfg             *config.Config
	Logger          *slog.Logger
	ErrorMiddleware *apimiddleware.ErrorMiddleware
	HTTPObserver    middleware.HTTPObserver
	RouterParams    router.RouterParams
}

func NewServer(params ServerParams) (delivery.Delivery, error) {
	echoServer := newEcho(params)

	srv := &apiServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: echoServer,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

func newEcho(params ServerParams) *echo.Echo {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Server.ReadTimeout = params.Cfg.HTTP.Timeouts.ReadTimeout
	echoServer.Server.ReadHeaderTimeout = params.Cfg.HTTP.Timeouts.ReadHeaderTimeout
	echoServer.Server.WriteTimeout = params.Cfg.HTTP.Timeouts.WriteTimeout
	echoServer.Server.IdleTimeout = params.Cfg.HTTP.Timeouts.IdleTimeout

	// Order matters: recover first, then request id so the access log and metrics see it.
	echoServer.Use(echomiddleware.Recover())
	echoServer.Use(middleware.NewRequestIDMiddleware(params.Logger).Process)
	echoServer.Use(middleware.Metrics(params.HTTPObserver))
	echoServer.Use(middleware.NewLoggerMiddleware(params.Logger, params.Cfg).Handle)
	echoServer.Use(echomiddleware.CORSWithConfig(corsConfig(params.Cfg)))
	echoServer.Use(echomiddleware.BodyLimit(params.Cfg.HTTP.MaxRequestBodySize))

	echoServer.HTTPErrorHandler = params.ErrorMiddleware.HandleHTTPError
	echoServer.Validator = validator.New()

	router.NewRouter(params.RouterParams).RegisterRoutes(echoServer)

	return echoServer
}

// corsConfig allows the browser client with credentials so the access cookie is sent.
func corsConfig(cfg *config.Config) echomiddleware.CORSConfig {
	conf := echomiddleware.DefaultCORSConfig
	if cfg.Client != nil && cfg.Client.BaseURL != "" {
		conf.AllowOrigins = []string{cfg.Client.BaseURL}
		conf.AllowCredentials = true
	}

	return conf
}

func (s *apiServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting API HTTP server", slog.String("host_port", hostPort))
	h2Server := &http2.Server{
		IdleTimeout: s.cfg.HTTP.Timeouts.IdleTimeout,
	}
	if err := s.server.StartH2CServer(hostPort, h2Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *apiServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down API HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}

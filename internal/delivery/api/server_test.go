package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"playground/config"
	"playground/internal/delivery/api/cookie"
	apimiddleware "playground/internal/delivery/api/middleware"
	"playground/internal/delivery/api/router"
	"playground/internal/delivery/api/router/handler"
	deliverycontext "playground/internal/delivery/context"
	"playground/internal/infra/metrics"
	mockUsecase "playground/internal/mocks/usecase"

	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T) (*httptest.Server, *metrics.Collector) {
	t.Helper()
	cfg := &config.Config{Client: &config.ClientConfig{BaseURL: "http://client.test"}}
	cfg.HTTP.MaxRequestBodySize = "1MB"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jar := cookie.NewJar(cfg)
	collector := metrics.NewCollector(metrics.NewRegistry())

	e := newEcho(ServerParams{
		Cfg:             cfg,
		Logger:          logger,
		ErrorMiddleware: apimiddleware.NewErrorMiddleware(logger),
		HTTPObserver:    collector,
		RouterParams: router.RouterParams{
			AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{
				AuthUC: mockUsecase.NewMockAuthUsecase(t), Jar: jar, Logger: logger,
			}),
			OAuthHandler: handler.NewOAuthHandler(handler.OAuthHandlerParams{
				OAuthUC: mockUsecase.NewMockOAuthUsecase(t), Jar: jar, Config: cfg, Logger: logger,
			}),
			UserHandler: handler.NewUserHandler(handler.UserHandlerParams{ProfileUC: mockUsecase.NewMockProfileUsecase(t)}),
			AuthMiddleware: apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{
				Sessions: mockUsecase.NewMockSessionUsecase(t), Jar: jar,
			}),
			MetricsHandler: collector.Handler(),
		},
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return srv, collector
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	res, err := http.Get(srv.URL + "/health")
	assert.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get(deliverycontext.HeaderXRequestID))
}

func TestServer_ProtectedRouteWithoutCookie(t *testing.T) {
	srv, _ := newTestServer(t)

	res, err := http.Get(srv.URL + "/fetchUserInfo")
	assert.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestServer_MetricsObserveRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	res, err := http.Get(srv.URL + "/health")
	assert.NoError(t, err)
	res.Body.Close()

	res, err = http.Get(srv.URL + "/metrics")
	assert.NoError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(body), "playground_http_requests_total")
	assert.Contains(t, string(body), `route="/health"`)
}

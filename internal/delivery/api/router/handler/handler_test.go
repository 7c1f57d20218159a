package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"playground/config"
	"playground/internal/delivery/api/cookie"
	apimiddleware "playground/internal/delivery/api/middleware"
	"playground/internal/delivery/api/response"
	"playground/internal/delivery/api/validator"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const clientURL = "http://client.test"

func newTestConfig() *config.Config {
	return &config.Config{Client: &config.ClientConfig{BaseURL: clientURL}}
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(newDiscardLogger()).HandleHTTPError

	return e
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newJar() *cookie.Jar {
	return cookie.NewJar(newTestConfig())
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set("User-Agent", "test-agent")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) response.MessageResponse {
	t.Helper()
	var body response.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func accessCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "access" {
			return c
		}
	}

	return nil
}

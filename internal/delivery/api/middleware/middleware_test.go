package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"playground/config"
	"playground/internal/delivery/api/cookie"
	"playground/internal/delivery/api/response"
	deliverycontext "playground/internal/delivery/context"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/domain/service"
	mockUsecase "playground/internal/mocks/usecase"
	"playground/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(slog.Default()).HandleHTTPError

	return e
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestErrorMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantDetails string
	}{
		{"app error keeps details", errors.Wrap(domainerrors.ErrMissingFields.WithDetails("email"), "signup"), http.StatusBadRequest, "MISSING_FIELDS", "email"},
		{"auth error hides details", domainerrors.ErrTokenInvalid.WithDetails("bad signature"), http.StatusUnauthorized, "TOKEN_INVALID", ""},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"), http.StatusMethodNotAllowed, "HTTP_ERROR", ""},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			e.GET("/", func(echo.Context) error { return tt.err })

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantDetails, body.Details)
			assert.NotEmpty(t, body.Message)
			require.NotNil(t, body.Meta)
			assert.NotEmpty(t, body.Meta.RequestID)
		})
	}
}

func TestErrorMiddleware_NoContent(t *testing.T) {
	e := newTestEcho()
	e.GET("/", func(echo.Context) error { return domainerrors.ErrNoContent })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func newAuthEcho(t *testing.T, sessions usecase.SessionUsecase) *echo.Echo {
	jar := cookie.NewJar(&config.Config{})
	auth := NewAuthMiddleware(AuthMiddlewareParams{Sessions: sessions, Jar: jar})

	e := newTestEcho()
	e.GET("/me", func(c echo.Context) error {
		claims, ok := deliverycontext.GetAuthClaims(c)
		require.True(t, ok)

		return c.String(http.StatusOK, claims.UserID.String())
	}, auth.Authenticate)

	return e
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()

	t.Run("missing cookie", func(t *testing.T) {
		e := newAuthEcho(t, mockUsecase.NewMockSessionUsecase(t))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		sessions := mockUsecase.NewMockSessionUsecase(t)
		sessions.On("Authenticate", mock.Anything, "good").Return(&usecase.AuthResult{Claims: &service.AccessClaims{UserID: userID}}, nil)
		e := newAuthEcho(t, sessions)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access", Value: "good"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID.String(), rec.Body.String())
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("refreshed token replaces the cookie", func(t *testing.T) {
		sessions := mockUsecase.NewMockSessionUsecase(t)
		sessions.On("Authenticate", mock.Anything, "stale").Return(&usecase.AuthResult{
			Claims:         &service.AccessClaims{UserID: userID},
			RefreshedToken: "fresh",
		}, nil)
		e := newAuthEcho(t, sessions)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access", Value: "stale"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "fresh", cookies[0].Value)
	})

	t.Run("rejected token", func(t *testing.T) {
		sessions := mockUsecase.NewMockSessionUsecase(t)
		sessions.On("Authenticate", mock.Anything, "forged").Return(nil, domainerrors.ErrTokenInvalid)
		e := newAuthEcho(t, sessions)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access", Value: "forged"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "TOKEN_INVALID", decodeError(t, rec).Code)
	})
}

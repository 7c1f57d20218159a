package middleware

import (
	"playground/internal/delivery/api/cookie"
	deliverycontext "playground/internal/delivery/context"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	Sessions usecase.SessionUsecase
	Jar      *cookie.Jar
}

// AuthMiddleware authenticates requests by the access cookie.
type AuthMiddleware struct {
	sessions usecase.SessionUsecase
	jar      *cookie.Jar
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{sessions: params.Sessions, jar: params.Jar}
}

// Authenticate rejects requests without a usable access cookie. When the session re-mints an
// expired token the new one replaces the cookie before the handler runs.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := m.jar.AccessToken(c)
		if token == "" {
			return domainerrors.ErrUnauthorized.WithDetails("missing access cookie")
		}

		result, err := m.sessions.Authenticate(c.Request().Context(), token)
		if err != nil {
			return err
		}
		if result.RefreshedToken != "" {
			m.jar.SetAccessToken(c, result.RefreshedToken)
		}
		deliverycontext.SetAuthClaims(c, result.Claims)

		return next(c)
	}
}

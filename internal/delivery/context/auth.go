package context

import (
	"playground/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// KeyAuthClaims is the echo.Context key of the authenticated access token claims.
const KeyAuthClaims = "auth_claims"

// SetAuthClaims records the claims of the request's verified access token.
func SetAuthClaims(c echo.Context, claims *service.AccessClaims) {
	c.Set(KeyAuthClaims, claims)
}

// GetAuthClaims returns the claims set by the cookie auth middleware.
func GetAuthClaims(c echo.Context) (*service.AccessClaims, bool) {
	claims, ok := c.Get(KeyAuthClaims).(*service.AccessClaims)

	return claims, ok && claims != nil
}

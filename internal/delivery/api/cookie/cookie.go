// Package cookie writes the access token cookie.
package cookie

import (
	"net/http"
	"time"

	"playground/config"

	"github.com/labstack/echo/v4"
)

const (
	defaultName   = "access"
	defaultMaxAge = time.Hour
)

// Jar knows the attributes of the access cookie.
type Jar struct {
	name   string
	domain string
	secure bool
	maxAge time.Duration
}

// NewJar is the constructor for Jar.
func NewJar(cfg *config.Config) *Jar {
	jar := &Jar{name: defaultName, maxAge: defaultMaxAge}
	if c := cfg.Cookie; c != nil {
		if c.Name != "" {
			jar.name = c.Name
		}
		if c.MaxAge > 0 {
			jar.maxAge = c.MaxAge
		}
		jar.domain = c.Domain
		jar.secure = c.Secure
	}

	return jar
}

// Name returns the cookie name.
func (j *Jar) Name() string {
	return j.name
}

// SetAccessToken writes an httpOnly, SameSite=Lax cookie on path /.
func (j *Jar) SetAccessToken(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     j.name,
		Value:    token,
		Path:     "/",
		Domain:   j.domain,
		MaxAge:   int(j.maxAge.Seconds()),
		Secure:   j.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// AccessToken returns the token sent by the client, "" when absent.
func (j *Jar) AccessToken(c echo.Context) string {
	cookie, err := c.Cookie(j.name)
	if err != nil {
		return ""
	}

	return cookie.Value
}

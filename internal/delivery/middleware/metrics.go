package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
)

// HTTPObserver records one finished request.
type HTTPObserver interface {
	ObserveHTTPRequest(method, route string, statusCode int, elapsed time.Duration)
}

// Metrics observes every request by its route template, so ids in paths do not explode label cardinality.
func Metrics(observer HTTPObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			observer.ObserveHTTPRequest(c.Request().Method, route, c.Response().Status, time.Since(start))

			return nil
		}
	}
}

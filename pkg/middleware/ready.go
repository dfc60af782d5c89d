package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireReady answers 503 until ready reports true, so report routes never
// run against a missing snapshot.
func RequireReady(ready func() bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !ready() {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "data not loaded yet"})
			}
			return next(c)
		}
	}
}

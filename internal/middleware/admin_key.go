package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
)

const HeaderAdminKey = "x-admin-api-key"

// RequireAdminKey rejects requests whose admin key header does not match key.
func RequireAdminKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get(HeaderAdminKey)
			if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				return unauthorized(c)
			}
			return next(c)
		}
	}
}

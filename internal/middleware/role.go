package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawhaven/shelter-api/internal/auth"
)

// RequireRole returns a middleware that enforces that the authenticated
// caller holds one of the specified roles.  It assumes JWTAuth ran
// earlier in the chain; a request without an identity is rejected the
// same way as one with the wrong role.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok || auth.RequireRole(id, roles...) != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient permissions"})
			}
			return next(c)
		}
	}
}

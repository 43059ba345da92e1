package middleware // reusable HTTP middleware shared by the route groups

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawhaven/shelter-api/internal/auth"
)

// identityKey is the context key under which JWTAuth stores the verified
// identity for downstream middleware and handlers.
const identityKey = "identity"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the verified identity into the request context.  The
// provided secret must match the one used when issuing tokens.  Protected
// routes are wrapped with this middleware so handlers can read the caller
// via IdentityFrom.
//
// A missing header and an invalid token both end in 401, but with
// different messages; neither reveals whether the account exists.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := auth.FromRequest(secret, c.Request().Header.Get("Authorization"))
			if err != nil {
				if errors.Is(err, auth.ErrMissingCredential) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by JWTAuth, or false when the
// request did not pass through it.
func IdentityFrom(c echo.Context) (auth.Identity, bool) {
	id, ok := c.Get(identityKey).(auth.Identity)
	return id, ok
}

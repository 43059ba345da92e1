package router

import (
	"github.com/labstack/echo/v4"

	"github.com/pawhaven/shelter-api/internal/auth"
	"github.com/pawhaven/shelter-api/internal/handler"
	"github.com/pawhaven/shelter-api/internal/middleware"
)

// jwtAuth is a small alias so route files read uniformly.
func jwtAuth(secret string) echo.MiddlewareFunc { return middleware.JWTAuth(secret) }

// RegisterPets registers the pet catalog and the admin CRUD endpoints.
// Reads are public so guests can browse adoptable animals; the listing
// is fronted by the Redis response cache when one is configured.  Writes
// require a valid token with the admin role.
func RegisterPets(e *echo.Echo, h *handler.PetHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	if cache != nil {
		e.GET("/api/pets", h.List, cache)
	} else {
		e.GET("/api/pets", h.List)
	}
	e.GET("/api/pets/:id", h.Get)

	g := e.Group(
		"/api/pets",
		jwtAuth(jwtSecret),
		middleware.RequireRole(auth.RoleAdmin),
	)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/pawhaven/shelter-api/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance: the health check used by load balancers
// and the contact form.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/api/health", handler.Health)
	e.POST("/api/contact", handler.Contact)
}

// RegisterAuth registers registration, login and the profile endpoints.
// Register and login mint or exchange credentials and are therefore
// unauthenticated; the profile endpoints require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	p := e.Group("/api/auth", jwtAuth(jwtSecret))
	p.GET("/profile", a.Profile)
	p.PUT("/profile", a.UpdateProfile)
}

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/pawhaven/shelter-api/internal/handler"
)

// RegisterAdoptions registers the adoption-request endpoints.  Both
// require authentication; the self-or-admin ownership rule is enforced
// inside the handlers because the target user comes from the request,
// not the route group.
func RegisterAdoptions(e *echo.Echo, h *handler.AdoptionHandler, jwtSecret string) {
	g := e.Group("/api/adoptions", jwtAuth(jwtSecret))
	g.POST("", h.Submit)
	g.GET("/user/:userId", h.ListByUser)
}

package router

import (
	"github.com/labstack/echo/v4"

	"ppvstore/internal/handler"
	"ppvstore/internal/middleware"
)

// RegisterAdmin registers catalog management under /v1.  All routes
// require a valid JWT with the admin role; anyone else is turned away
// with a redirect to the home screen.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	admin := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireAdmin(),
	}

	e.POST("/v1/videos", a.CreateVideo, admin...)
	e.PUT("/v1/videos/:id", a.UpdateVideo, admin...)
	e.PATCH("/v1/videos/:id", a.UpdateVideo, admin...) // allow partial updates via PATCH as well
	e.DELETE("/v1/videos/:id", a.DeleteVideo, admin...)

	e.GET("/v1/admin/stats", a.Stats, admin...)
}

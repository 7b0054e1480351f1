// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"ppvstore/internal/handler"
	"ppvstore/internal/middleware"
	"ppvstore/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints and the protected
// identity endpoint.  Login and logout live under /v1/auth and need no
// token; /v1/me requires a valid access token with either role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	// Logout clears the single session record.  It intentionally does not
	// demand a token: a client with an expired token can still log out.
	g.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me,
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleAdmin))
}

// RegisterPublic registers the unauthenticated browse endpoints.  The
// storefront listing sits behind the Redis response cache when one is
// configured; cacheMW may be a pass-through.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cacheMW echo.MiddlewareFunc) {
	e.GET("/v1/videos", p.ListVideos, cacheMW)
	e.GET("/v1/videos/:id/comments", p.ListComments)
}

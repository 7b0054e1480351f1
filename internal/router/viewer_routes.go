package router

import (
	"github.com/labstack/echo/v4"

	"ppvstore/internal/handler"
	"ppvstore/internal/middleware"
	"ppvstore/internal/model"
)

// RegisterViewer registers the watch, purchase and comment endpoints.
//
// The video detail route is registered without JWT middleware on purpose:
// access is resolved by the view gate inside the handler, which answers a
// guest with a login redirect carrying the requested destination so the
// client can resume there after authenticating.  Purchase and comment
// require a valid token with either role.  Middleware is attached per
// route rather than through a group so an unknown /v1 path still gets a
// plain 404 instead of an auth error.
func RegisterViewer(e *echo.Echo, v *handler.ViewerHandler, jwtSecret string) {
	e.GET("/v1/videos/:id", v.GetVideo)

	auth := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleAdmin),
	}
	e.POST("/v1/videos/:id/purchase", v.Purchase, auth...)
	e.GET("/v1/my/purchases", v.MyPurchases, auth...)
	e.POST("/v1/videos/:id/comments", v.AddComment, auth...)
}

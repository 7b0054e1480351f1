package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ppvstore/internal/model"
)

// RequireRole enforces that the authenticated session carries one of the
// given roles.  The values correspond to the JWT's "role" claim, which a
// preceding JWTAuth must have stored in the context.  Requests with a
// missing or unlisted role are rejected with 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RequireAdmin gates the admin screens.  A non-admin session is turned
// away with the home screen as the redirect target, matching the router
// rule that any attempt to reach Admin without the role resolves to Home.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || role != model.RoleAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{
					"error":    "admin privileges required",
					"redirect": "/",
				})
			}
			return next(c)
		}
	}
}

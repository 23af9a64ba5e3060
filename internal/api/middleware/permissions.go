package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftcrm/platform/internal/core/domain"
)

// RequirePermission enforces that the authenticated user's stamped permission
// set contains every listed permission. Checks read the stored set only;
// roles are never consulted here.
func RequirePermission(perms ...domain.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get("user").(*domain.CrmUser)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			for _, p := range perms {
				if !user.HasPermission(p) {
					return echo.NewHTTPError(http.StatusForbidden, "forbidden")
				}
			}
			return next(c)
		}
	}
}

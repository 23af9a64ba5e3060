package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftcrm/platform/internal/core/domain"
)

// ctxUser extracts the authenticated user injected by the Session middleware
// and fast-fails before any service call when the middleware did not run.
func ctxUser(c echo.Context) (*domain.CrmUser, error) {
	user, _ := c.Get("user").(*domain.CrmUser)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

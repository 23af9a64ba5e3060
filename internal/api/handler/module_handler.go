package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftcrm/platform/internal/core/domain"
	"github.com/craftcrm/platform/internal/core/ports"
)

// ModuleHandler handles HTTP requests for live modules.
type ModuleHandler struct {
	service ports.ModuleService
}

func NewModuleHandler(service ports.ModuleService) *ModuleHandler {
	return &ModuleHandler{service: service}
}

type updateModuleRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
	SortOrder   *int   `json:"sort_order"`
}

// ListByApp handles GET /v1/apps/:appId/modules. The path app must be the
// caller's own app.
func (h *ModuleHandler) ListByApp(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	if c.Param("appId") != user.AppID {
		return domain.ErrForbidden
	}

	modules, err := h.service.ListByApp(c.Request().Context(), user.AppID)
	if err != nil {
		return err
	}
	return ok(c, modules)
}

// Get handles GET /v1/modules/:id.
func (h *ModuleHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	module, err := h.service.Get(c.Request().Context(), user.AppID, c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, module)
}

// Update handles PATCH /v1/modules/:id.
func (h *ModuleHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateModuleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	module, err := h.service.Rename(c.Request().Context(), user.AppID, c.Param("id"), req.DisplayName, req.SortOrder)
	if err != nil {
		return err
	}
	return ok(c, module)
}

// Delete handles DELETE /v1/modules/:id. Fields, records, views and
// activities of the module go with it.
func (h *ModuleHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.AppID, c.Param("id")); err != nil {
		return err
	}
	return ok(c, map[string]string{"message": "module deleted"})
}

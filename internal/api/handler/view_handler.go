package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftcrm/platform/internal/core/domain"
	"github.com/craftcrm/platform/internal/core/ports"
)

// ViewHandler handles HTTP requests for saved views.
type ViewHandler struct {
	service ports.ViewService
}

func NewViewHandler(service ports.ViewService) *ViewHandler {
	return &ViewHandler{service: service}
}

type createViewRequest struct {
	Name      string              `json:"name" validate:"required"`
	Type      string              `json:"type" validate:"required,oneof=list kanban calendar"`
	Filters   []domain.ViewFilter `json:"filters"`
	Sort      []domain.ViewSort   `json:"sort"`
	Columns   []string            `json:"columns"`
	IsDefault bool                `json:"is_default"`
	IsShared  bool                `json:"is_shared"`
}

type updateViewRequest struct {
	Name      *string             `json:"name"`
	Filters   []domain.ViewFilter `json:"filters"`
	Sort      []domain.ViewSort   `json:"sort"`
	Columns   []string            `json:"columns"`
	IsDefault *bool               `json:"is_default"`
	IsShared  *bool               `json:"is_shared"`
}

type evaluateViewResponse struct {
	Rows  []domain.ProjectedRow `json:"rows"`
	Total int                   `json:"total"`
}

// Create handles POST /v1/modules/:moduleId/views.
func (h *ViewHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createViewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.Create(c.Request().Context(), user.AppID, ports.CreateViewInput{
		ModuleID:  c.Param("moduleId"),
		Name:      req.Name,
		Type:      domain.ViewType(req.Type),
		Filters:   req.Filters,
		Sort:      req.Sort,
		Columns:   req.Columns,
		IsDefault: req.IsDefault,
		IsShared:  req.IsShared,
	})
	if err != nil {
		return err
	}
	return created(c, view)
}

// ListByModule handles GET /v1/modules/:moduleId/views.
func (h *ViewHandler) ListByModule(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListByModule(c.Request().Context(), user.AppID, c.Param("moduleId"))
	if err != nil {
		return err
	}
	return ok(c, views)
}

// Update handles PATCH /v1/views/:id.
func (h *ViewHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateViewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := h.service.Update(c.Request().Context(), user.AppID, c.Param("id"), ports.UpdateViewInput{
		Name:      req.Name,
		Filters:   req.Filters,
		Sort:      req.Sort,
		Columns:   req.Columns,
		IsDefault: req.IsDefault,
		IsShared:  req.IsShared,
	})
	if err != nil {
		return err
	}
	return ok(c, view)
}

// Delete handles DELETE /v1/views/:id. The module's default view cannot be
// deleted while other views remain.
func (h *ViewHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.AppID, c.Param("id")); err != nil {
		return err
	}
	return ok(c, map[string]string{"message": "view deleted"})
}

// Evaluate handles GET /v1/views/:id/records: the view's filters, sort and
// columns applied over its module's records.
func (h *ViewHandler) Evaluate(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	rows, err := h.service.Evaluate(c.Request().Context(), user.AppID, c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, evaluateViewResponse{Rows: rows, Total: len(rows)})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftcrm/platform/internal/core/ports"
)

// TenantHandler handles HTTP requests for tenant accounts.
type TenantHandler struct {
	service ports.TenantService
}

func NewTenantHandler(service ports.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

type createTenantRequest struct {
	Name    string `json:"name"     validate:"required"`
	Slug    string `json:"slug"     validate:"required"`
	OwnerID string `json:"owner_id"`
	Plan    string `json:"plan"`
}

// Create handles POST /v1/tenants.
func (h *TenantHandler) Create(c echo.Context) error {
	var req createTenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenant, err := h.service.Create(c.Request().Context(), req.Name, req.Slug, req.OwnerID, req.Plan)
	if err != nil {
		return err
	}
	return created(c, tenant)
}

// Get handles GET /v1/tenants/:id.
func (h *TenantHandler) Get(c echo.Context) error {
	tenant, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, tenant)
}

// GetBySlug handles GET /v1/tenants/slug/:slug.
func (h *TenantHandler) GetBySlug(c echo.Context) error {
	tenant, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return ok(c, tenant)
}

// ListApps handles GET /v1/tenants/:id/apps.
func (h *TenantHandler) ListApps(c echo.Context) error {
	apps, err := h.service.ListApps(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, apps)
}

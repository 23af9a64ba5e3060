package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftcrm/platform/internal/core/domain"
	"github.com/craftcrm/platform/internal/core/ports"
)

// GeneratorHandler handles HTTP requests for the schema generation wizard.
type GeneratorHandler struct {
	service ports.GeneratorService
}

func NewGeneratorHandler(service ports.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{service: service}
}

// Generate handles POST /v1/apps/generate. One wizard submission becomes a
// live app with modules, fields and one default view per module.
func (h *GeneratorHandler) Generate(c echo.Context) error {
	var req generateCrmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.CreateCrmFromWizard(c.Request().Context(), ports.WizardInput{
		TenantID:     req.TenantID,
		Name:         req.Name,
		BusinessType: req.BusinessType,
		Pillars:      req.Pillars,
		Branding: domain.Branding{
			LogoURL:      req.Branding.LogoURL,
			PrimaryColor: req.Branding.PrimaryColor,
		},
	})
	if err != nil {
		return err
	}
	return created(c, generateCrmResponse{
		App:     result.App,
		Modules: result.Modules,
		Fields:  result.Fields,
		Views:   result.Views,
	})
}

// Preview handles GET /v1/apps/preview?business_type=... without persisting
// anything.
func (h *GeneratorHandler) Preview(c echo.Context) error {
	preview, err := h.service.PreviewCrmStructure(c.QueryParam("business_type"))
	if err != nil {
		return err
	}
	return ok(c, preview)
}

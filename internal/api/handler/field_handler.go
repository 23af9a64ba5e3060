package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftcrm/platform/internal/core/domain"
	"github.com/craftcrm/platform/internal/core/ports"
)

// FieldHandler handles HTTP requests for field definitions.
type FieldHandler struct {
	service ports.FieldService
}

func NewFieldHandler(service ports.FieldService) *FieldHandler {
	return &FieldHandler{service: service}
}

type createFieldRequest struct {
	Name       string   `json:"name"  validate:"required"`
	Label      string   `json:"label" validate:"required"`
	Type       string   `json:"type"  validate:"required"`
	Required   bool     `json:"required"`
	Unique     bool     `json:"unique"`
	Default    any      `json:"default"`
	Options    []string `json:"options"`
	ShowInList bool     `json:"show_in_list"`
	ShowInForm bool     `json:"show_in_form"`
}

type updateFieldRequest struct {
	Label      *string  `json:"label"`
	Required   *bool    `json:"required"`
	Options    []string `json:"options"`
	ShowInList *bool    `json:"show_in_list"`
	ShowInForm *bool    `json:"show_in_form"`
	SortOrder  *int     `json:"sort_order"`
}

// Create handles POST /v1/modules/:moduleId/fields. The new field is placed
// after the module's current last field.
func (h *FieldHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createFieldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	field, err := h.service.Create(c.Request().Context(), user.AppID, ports.CreateFieldInput{
		ModuleID:   c.Param("moduleId"),
		Name:       req.Name,
		Label:      req.Label,
		Type:       domain.FieldType(req.Type),
		Required:   req.Required,
		Unique:     req.Unique,
		Default:    req.Default,
		Options:    req.Options,
		ShowInList: req.ShowInList,
		ShowInForm: req.ShowInForm,
	})
	if err != nil {
		return err
	}
	return created(c, field)
}

// Update handles PATCH /v1/fields/:id. Absent attributes stay unchanged.
func (h *FieldHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateFieldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	field, err := h.service.Update(c.Request().Context(), user.AppID, c.Param("id"), ports.UpdateFieldInput{
		Label:      req.Label,
		Required:   req.Required,
		Options:    req.Options,
		ShowInList: req.ShowInList,
		ShowInForm: req.ShowInForm,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		return err
	}
	return ok(c, field)
}

// Delete handles DELETE /v1/fields/:id. System fields are protected.
func (h *FieldHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.AppID, c.Param("id")); err != nil {
		return err
	}
	return ok(c, map[string]string{"message": "field deleted"})
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/craftcrm/platform/internal/core/ports"
)

// RecordHandler handles HTTP requests for schema-less records.
type RecordHandler struct {
	service ports.RecordService
}

func NewRecordHandler(service ports.RecordService) *RecordHandler {
	return &RecordHandler{service: service}
}

// Create handles POST /v1/modules/:moduleId/records.
func (h *RecordHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req recordPayloadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Data == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "data is required")
	}

	record, err := h.service.Create(c.Request().Context(), user.AppID, c.Param("moduleId"), req.Data, user.ID)
	if err != nil {
		return err
	}
	return created(c, record)
}

// Update handles PATCH /v1/records/:id. The body is a merge patch over the
// record's data; keys left out keep their stored values.
func (h *RecordHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req recordPayloadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Data == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "data is required")
	}

	record, err := h.service.Update(c.Request().Context(), user.AppID, c.Param("id"), req.Data, user.ID)
	if err != nil {
		return err
	}
	return ok(c, record)
}

// Get handles GET /v1/records/:id and includes the activity trail.
func (h *RecordHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), user.AppID, c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, recordDetailResponse{
		Record:     detail.Record,
		Activities: detail.Activities,
	})
}

// List handles GET /v1/modules/:moduleId/records with limit/offset paging.
func (h *RecordHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	result, err := h.service.List(c.Request().Context(), ports.ListRecordsInput{
		AppID:    user.AppID,
		ModuleID: c.Param("moduleId"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return err
	}
	return ok(c, listRecordsResponse{
		Records: result.Records,
		Total:   result.Total,
		Limit:   result.Limit,
		Offset:  result.Offset,
	})
}

// Count handles GET /v1/modules/:moduleId/records/count.
func (h *RecordHandler) Count(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	count, err := h.service.Count(c.Request().Context(), user.AppID, c.Param("moduleId"))
	if err != nil {
		return err
	}
	return ok(c, countResponse{Count: count})
}

// Delete handles DELETE /v1/records/:id.
func (h *RecordHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.AppID, c.Param("id")); err != nil {
		return err
	}
	return ok(c, map[string]string{"message": "record deleted"})
}

// AddNote handles POST /v1/records/:id/activities.
func (h *RecordHandler) AddNote(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req addNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	activity, err := h.service.AddNote(c.Request().Context(), user.AppID, c.Param("id"), req.Content, user.ID)
	if err != nil {
		return err
	}
	return created(c, activity)
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/craftcrm/platform/internal/core/domain"
	"github.com/craftcrm/platform/internal/core/ports"
)

type stubRecordService struct {
	createFn  func(ctx context.Context, appID, moduleID string, data map[string]any, authorID string) (*domain.Record, error)
	updateFn  func(ctx context.Context, appID, recordID string, data map[string]any, authorID string) (*domain.Record, error)
	getFn     func(ctx context.Context, appID, recordID string) (*ports.RecordDetail, error)
	listFn    func(ctx context.Context, input ports.ListRecordsInput) (*ports.ListRecordsResult, error)
	countFn   func(ctx context.Context, appID, moduleID string) (int64, error)
	deleteFn  func(ctx context.Context, appID, recordID string) error
	addNoteFn func(ctx context.Context, appID, recordID, content, authorID string) (*domain.Activity, error)
}

func (s *stubRecordService) Create(ctx context.Context, appID, moduleID string, data map[string]any, authorID string) (*domain.Record, error) {
	return s.createFn(ctx, appID, moduleID, data, authorID)
}

func (s *stubRecordService) Update(ctx context.Context, appID, recordID string, data map[string]any, authorID string) (*domain.Record, error) {
	return s.updateFn(ctx, appID, recordID, data, authorID)
}

func (s *stubRecordService) Get(ctx context.Context, appID, recordID string) (*ports.RecordDetail, error) {
	return s.getFn(ctx, appID, recordID)
}

func (s *stubRecordService) List(ctx context.Context, input ports.ListRecordsInput) (*ports.ListRecordsResult, error) {
	return s.listFn(ctx, input)
}

func (s *stubRecordService) Count(ctx context.Context, appID, moduleID string) (int64, error) {
	return s.countFn(ctx, appID, moduleID)
}

func (s *stubRecordService) Delete(ctx context.Context, appID, recordID string) error {
	return s.deleteFn(ctx, appID, recordID)
}

func (s *stubRecordService) AddNote(ctx context.Context, appID, recordID, content, authorID string) (*domain.Activity, error) {
	return s.addNoteFn(ctx, appID, recordID, content, authorID)
}

func TestRecordHandler_Create_Success(t *testing.T) {
	stub := &stubRecordService{
		createFn: func(_ context.Context, appID, moduleID string, data map[string]any, authorID string) (*domain.Record, error) {
			if appID != "app1" || moduleID != "m1" || authorID != "u1" {
				t.Fatalf("unexpected args: %s %s %s", appID, moduleID, authorID)
			}
			if data["name"] != "Ada" {
				t.Fatalf("payload not forwarded: %v", data)
			}
			return &domain.Record{ID: "r1", ModuleID: moduleID, Data: data, Version: 1, CreatedBy: authorID}, nil
		},
	}
	h := NewRecordHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/modules/m1/records",
		`{"data":{"name":"Ada","email":"ada@acme.com"}}`)
	c.SetParamNames("moduleId")
	c.SetParamValues("m1")
	c.Set("user", sessionUser())

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	record := resp["data"].(map[string]any)
	if record["id"] != "r1" || record["version"] != float64(1) {
		t.Fatalf("unexpected record payload: %v", record)
	}
}

func TestRecordHandler_Create_MissingData(t *testing.T) {
	stub := &stubRecordService{
		createFn: func(context.Context, string, string, map[string]any, string) (*domain.Record, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewRecordHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/modules/m1/records", `{}`)
	c.SetParamNames("moduleId")
	c.SetParamValues("m1")
	c.Set("user", sessionUser())

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestRecordHandler_Create_RequiresSession(t *testing.T) {
	h := NewRecordHandler(&stubRecordService{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/modules/m1/records", `{"data":{"name":"Ada"}}`)
	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRecordHandler_Create_ValidationErrorPassesThrough(t *testing.T) {
	stub := &stubRecordService{
		createFn: func(context.Context, string, string, map[string]any, string) (*domain.Record, error) {
			return nil, &domain.ValidationError{Field: "email", Reason: domain.ReasonRequired}
		},
	}
	h := NewRecordHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/modules/m1/records", `{"data":{"name":"Ada"}}`)
	c.SetParamNames("moduleId")
	c.SetParamValues("m1")
	c.Set("user", sessionUser())

	err := h.Create(c)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "email" {
		t.Fatalf("expected validation error to pass through, got %v", err)
	}
}

func TestRecordHandler_Update_MergePatch(t *testing.T) {
	stub := &stubRecordService{
		updateFn: func(_ context.Context, appID, recordID string, data map[string]any, authorID string) (*domain.Record, error) {
			if appID != "app1" || recordID != "r1" {
				t.Fatalf("unexpected args: %s %s", appID, recordID)
			}
			if len(data) != 1 || data["status"] != "closed" {
				t.Fatalf("patch must carry only touched keys: %v", data)
			}
			return &domain.Record{ID: recordID, Version: 2, UpdatedBy: authorID}, nil
		},
	}
	h := NewRecordHandler(stub)

	c, rec := newTestContext(t, http.MethodPatch, "/v1/records/r1", `{"data":{"status":"closed"}}`)
	c.SetParamNames("id")
	c.SetParamValues("r1")
	c.Set("user", sessionUser())

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeEnvelope(t, rec)
	record := resp["data"].(map[string]any)
	if record["version"] != float64(2) {
		t.Fatalf("unexpected version: %v", record["version"])
	}
}

func TestRecordHandler_Update_VersionConflictPassesThrough(t *testing.T) {
	stub := &stubRecordService{
		updateFn: func(context.Context, string, string, map[string]any, string) (*domain.Record, error) {
			return nil, domain.ErrVersionConflict
		},
	}
	h := NewRecordHandler(stub)

	c, _ := newTestContext(t, http.MethodPatch, "/v1/records/r1", `{"data":{"status":"closed"}}`)
	c.SetParamNames("id")
	c.SetParamValues("r1")
	c.Set("user", sessionUser())

	if err := h.Update(c); !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict to pass through, got %v", err)
	}
}

func TestRecordHandler_Get_IncludesTrail(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubRecordService{
		getFn: func(_ context.Context, _, recordID string) (*ports.RecordDetail, error) {
			return &ports.RecordDetail{
				Record: &domain.Record{ID: recordID, Version: 1},
				Activities: []*domain.Activity{
					{ID: "a1", RecordID: recordID, Type: domain.ActivitySystem, Content: "record created", CreatedAt: now},
				},
			}, nil
		},
	}
	h := NewRecordHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/v1/records/r1", "")
	c.SetParamNames("id")
	c.SetParamValues("r1")
	c.Set("user", sessionUser())

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeEnvelope(t, rec)
	data := resp["data"].(map[string]any)
	activities, ok := data["activities"].([]any)
	if !ok || len(activities) != 1 {
		t.Fatalf("expected activity trail in response: %v", data)
	}
}

func TestRecordHandler_List_ForwardsPaging(t *testing.T) {
	stub := &stubRecordService{
		listFn: func(_ context.Context, input ports.ListRecordsInput) (*ports.ListRecordsResult, error) {
			if input.AppID != "app1" || input.ModuleID != "m1" || input.Limit != 10 || input.Offset != 20 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.ListRecordsResult{
				Records: []*domain.Record{{ID: "r1", Version: 1}},
				Total:   41,
				Limit:   10,
				Offset:  20,
			}, nil
		},
	}
	h := NewRecordHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/v1/modules/m1/records?limit=10&offset=20", "")
	c.SetParamNames("moduleId")
	c.SetParamValues("m1")
	c.Set("user", sessionUser())

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeEnvelope(t, rec)
	data := resp["data"].(map[string]any)
	if data["total"] != float64(41) || data["limit"] != float64(10) {
		t.Fatalf("unexpected paging payload: %v", data)
	}
}

func TestRecordHandler_Count(t *testing.T) {
	stub := &stubRecordService{
		countFn: func(_ context.Context, _, moduleID string) (int64, error) {
			return 7, nil
		},
	}
	h := NewRecordHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/v1/modules/m1/records/count", "")
	c.SetParamNames("moduleId")
	c.SetParamValues("m1")
	c.Set("user", sessionUser())

	if err := h.Count(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeEnvelope(t, rec)
	data := resp["data"].(map[string]any)
	if data["count"] != float64(7) {
		t.Fatalf("unexpected count: %v", data)
	}
}

func TestRecordHandler_Delete_NotFoundPassesThrough(t *testing.T) {
	stub := &stubRecordService{
		deleteFn: func(context.Context, string, string) error {
			return domain.ErrRecordNotFound
		},
	}
	h := NewRecordHandler(stub)

	c, _ := newTestContext(t, http.MethodDelete, "/v1/records/ghost", "")
	c.SetParamNames("id")
	c.SetParamValues("ghost")
	c.Set("user", sessionUser())

	if err := h.Delete(c); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound to pass through, got %v", err)
	}
}

func TestRecordHandler_AddNote(t *testing.T) {
	stub := &stubRecordService{
		addNoteFn: func(_ context.Context, appID, recordID, content, authorID string) (*domain.Activity, error) {
			if appID != "app1" || recordID != "r1" || content != "called them back" || authorID != "u1" {
				t.Fatalf("unexpected args: %s %q %s", recordID, content, authorID)
			}
			return &domain.Activity{ID: "a1", RecordID: recordID, Type: domain.ActivityNote, Content: content, CreatedBy: authorID}, nil
		},
	}
	h := NewRecordHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/records/r1/activities",
		`{"content":"called them back"}`)
	c.SetParamNames("id")
	c.SetParamValues("r1")
	c.Set("user", sessionUser())

	if err := h.AddNote(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestRecordHandler_AddNote_EmptyContent(t *testing.T) {
	stub := &stubRecordService{
		addNoteFn: func(context.Context, string, string, string, string) (*domain.Activity, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewRecordHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/records/r1/activities", `{"content":""}`)
	c.SetParamNames("id")
	c.SetParamValues("r1")
	c.Set("user", sessionUser())

	err := h.AddNote(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

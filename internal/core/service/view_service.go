package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/craftcrm/platform/internal/api/metrics"
	"github.com/craftcrm/platform/internal/core/domain"
	"github.com/craftcrm/platform/internal/core/ports"
)

// ViewService manages saved views and evaluates them over a module's records.
// Evaluation itself is the pure domain.EvaluateView; this service only loads
// its inputs.
type ViewService struct {
	modules ports.ModuleRepository
	fields  ports.FieldRepository
	records ports.RecordRepository
	views   ports.ViewRepository
	logger  zerolog.Logger
}

func NewViewService(
	modules ports.ModuleRepository,
	fields ports.FieldRepository,
	records ports.RecordRepository,
	views ports.ViewRepository,
	logger zerolog.Logger,
) *ViewService {
	return &ViewService{modules: modules, fields: fields, records: records, views: views, logger: logger}
}

// Create adds a view. When IsDefault is set, the previous default of the
// module is demoted first so exactly one default survives.
func (s *ViewService) Create(ctx context.Context, appID string, input ports.CreateViewInput) (*domain.View, error) {
	if _, err := scopedModule(ctx, s.modules, appID, input.ModuleID); err != nil {
		return nil, fmt.Errorf("create view: %w", err)
	}

	now := time.Now().UTC()
	view := &domain.View{
		ID:        newID(),
		ModuleID:  input.ModuleID,
		Name:      input.Name,
		Type:      input.Type,
		Filters:   input.Filters,
		Sort:      input.Sort,
		Columns:   input.Columns,
		IsDefault: input.IsDefault,
		IsShared:  input.IsShared,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if view.Filters == nil {
		view.Filters = []domain.ViewFilter{}
	}
	if view.Sort == nil {
		view.Sort = []domain.ViewSort{}
	}

	if view.IsDefault {
		if err := s.views.ClearDefault(ctx, input.ModuleID); err != nil {
			return nil, fmt.Errorf("create view: %w", err)
		}
	}
	if err := s.views.Create(ctx, view); err != nil {
		return nil, fmt.Errorf("create view: %w", err)
	}
	return view, nil
}

func (s *ViewService) ListByModule(ctx context.Context, appID, moduleID string) ([]*domain.View, error) {
	if _, err := scopedModule(ctx, s.modules, appID, moduleID); err != nil {
		return nil, fmt.Errorf("list views: %w", err)
	}
	return s.views.ListByModule(ctx, moduleID)
}

// Update applies a partial update, keeping the one-default-per-module
// invariant when IsDefault changes.
func (s *ViewService) Update(ctx context.Context, appID, viewID string, input ports.UpdateViewInput) (*domain.View, error) {
	view, err := s.scopedView(ctx, appID, viewID)
	if err != nil {
		return nil, fmt.Errorf("update view: %w", err)
	}

	if input.Name != nil {
		view.Name = *input.Name
	}
	if input.Filters != nil {
		view.Filters = input.Filters
	}
	if input.Sort != nil {
		view.Sort = input.Sort
	}
	if input.Columns != nil {
		view.Columns = input.Columns
	}
	if input.IsShared != nil {
		view.IsShared = *input.IsShared
	}
	if input.IsDefault != nil && *input.IsDefault && !view.IsDefault {
		if err := s.views.ClearDefault(ctx, view.ModuleID); err != nil {
			return nil, fmt.Errorf("update view: %w", err)
		}
		view.IsDefault = true
	}
	view.UpdatedAt = time.Now().UTC()

	if err := s.views.Update(ctx, view); err != nil {
		return nil, fmt.Errorf("update view: %w", err)
	}
	return view, nil
}

// Delete removes a view. The default view of a module cannot be deleted while
// other views exist, so the module never ends up without a default.
func (s *ViewService) Delete(ctx context.Context, appID, viewID string) error {
	view, err := s.scopedView(ctx, appID, viewID)
	if err != nil {
		return fmt.Errorf("delete view: %w", err)
	}
	if view.IsDefault {
		siblings, err := s.views.ListByModule(ctx, view.ModuleID)
		if err != nil {
			return fmt.Errorf("delete view: %w", err)
		}
		if len(siblings) > 1 {
			return domain.ErrForbidden
		}
	}
	return s.views.Delete(ctx, viewID)
}

// Evaluate loads the view's fields and records and runs the pure evaluation.
func (s *ViewService) Evaluate(ctx context.Context, appID, viewID string) ([]domain.ProjectedRow, error) {
	view, err := s.scopedView(ctx, appID, viewID)
	if err != nil {
		return nil, fmt.Errorf("evaluate view: %w", err)
	}
	fields, err := s.fields.ListByModule(ctx, view.ModuleID)
	if err != nil {
		return nil, fmt.Errorf("evaluate view: %w", err)
	}
	records, err := s.records.ListAll(ctx, view.ModuleID)
	if err != nil {
		return nil, fmt.Errorf("evaluate view: %w", err)
	}

	timer := prometheus.NewTimer(metrics.ViewEvaluationDuration.WithLabelValues(string(view.Type)))
	defer timer.ObserveDuration()

	deref := make([]domain.Field, len(fields))
	for i, f := range fields {
		deref[i] = *f
	}
	return domain.EvaluateView(*view, deref, records), nil
}

// scopedView loads a view and checks, through its module, that it belongs to
// the caller's app.
func (s *ViewService) scopedView(ctx context.Context, appID, viewID string) (*domain.View, error) {
	view, err := s.views.FindByID(ctx, viewID)
	if err != nil {
		return nil, err
	}
	if _, err := scopedModule(ctx, s.modules, appID, view.ModuleID); err != nil {
		return nil, err
	}
	return view, nil
}

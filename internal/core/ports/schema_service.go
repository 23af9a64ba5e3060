package ports

import (
	"context"

	"github.com/craftcrm/platform/internal/core/domain"
)

// ModuleService manages live modules after generation. appID is the caller's
// app throughout; touching another app's module is domain.ErrForbidden.
type ModuleService interface {
	Get(ctx context.Context, appID, moduleID string) (*domain.Module, error)
	ListByApp(ctx context.Context, appID string) ([]*domain.Module, error)
	// Rename updates display name and/or sort order.
	Rename(ctx context.Context, appID, moduleID, displayName string, sortOrder *int) (*domain.Module, error)
	// Delete removes the module and cascades to its fields, records, views
	// and activities through a single deletion routine.
	Delete(ctx context.Context, appID, moduleID string) error
}

// CreateFieldInput carries the data for an operator-created field.
type CreateFieldInput struct {
	ModuleID   string
	Name       string
	Label      string
	Type       domain.FieldType
	Required   bool
	Unique     bool
	Default    any
	Options    []string
	ShowInList bool
	ShowInForm bool
}

// UpdateFieldInput carries a partial field update. Nil pointers leave the
// corresponding attribute unchanged.
type UpdateFieldInput struct {
	Label      *string
	Required   *bool
	Options    []string
	ShowInList *bool
	ShowInForm *bool
	SortOrder  *int
}

// FieldService manages field definitions of a module. appID scopes every
// operation to the caller's app.
type FieldService interface {
	Create(ctx context.Context, appID string, input CreateFieldInput) (*domain.Field, error)
	Update(ctx context.Context, appID, fieldID string, input UpdateFieldInput) (*domain.Field, error)
	// Delete removes a non-system field. Stored record values under the key
	// are left in place; views referencing the field skip it at evaluation.
	Delete(ctx context.Context, appID, fieldID string) error
}

// CreateViewInput carries the data for a new saved view.
type CreateViewInput struct {
	ModuleID  string
	Name      string
	Type      domain.ViewType
	Filters   []domain.ViewFilter
	Sort      []domain.ViewSort
	Columns   []string
	IsDefault bool
	IsShared  bool
}

// UpdateViewInput carries a partial view update.
type UpdateViewInput struct {
	Name      *string
	Filters   []domain.ViewFilter
	Sort      []domain.ViewSort
	Columns   []string
	IsDefault *bool
	IsShared  *bool
}

// ViewService manages saved views and evaluates them over a module's records.
// appID scopes every operation to the caller's app.
type ViewService interface {
	Create(ctx context.Context, appID string, input CreateViewInput) (*domain.View, error)
	ListByModule(ctx context.Context, appID, moduleID string) ([]*domain.View, error)
	Update(ctx context.Context, appID, viewID string, input UpdateViewInput) (*domain.View, error)
	Delete(ctx context.Context, appID, viewID string) error
	// Evaluate loads the view's module fields and records and applies the
	// view's filter/sort/column configuration.
	Evaluate(ctx context.Context, appID, viewID string) ([]domain.ProjectedRow, error)
}

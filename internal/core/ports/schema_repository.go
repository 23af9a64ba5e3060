package ports

import (
	"context"

	"github.com/craftcrm/platform/internal/core/domain"
)

// ModuleRepository defines persistence for modules. Module names are unique
// per app at the index level; Create returns domain.ErrModuleExists on a
// collision.
type ModuleRepository interface {
	Create(ctx context.Context, m *domain.Module) error
	FindByID(ctx context.Context, id string) (*domain.Module, error)
	ListByApp(ctx context.Context, appID string) ([]*domain.Module, error)
	CountByApp(ctx context.Context, appID string) (int64, error)
	Update(ctx context.Context, m *domain.Module) error
	Delete(ctx context.Context, id string) error
}

// FieldRepository defines persistence for field definitions.
type FieldRepository interface {
	Create(ctx context.Context, f *domain.Field) error
	FindByID(ctx context.Context, id string) (*domain.Field, error)
	// ListByModule returns fields ordered by SortOrder.
	ListByModule(ctx context.Context, moduleID string) ([]*domain.Field, error)
	MaxSortOrder(ctx context.Context, moduleID string) (int, error)
	Update(ctx context.Context, f *domain.Field) error
	Delete(ctx context.Context, id string) error
	DeleteByModule(ctx context.Context, moduleID string) error
}

// ViewRepository defines persistence for saved views.
type ViewRepository interface {
	Create(ctx context.Context, v *domain.View) error
	FindByID(ctx context.Context, id string) (*domain.View, error)
	ListByModule(ctx context.Context, moduleID string) ([]*domain.View, error)
	Update(ctx context.Context, v *domain.View) error
	// ClearDefault unsets IsDefault on every view of the module. Used before
	// promoting another view so at most one default survives.
	ClearDefault(ctx context.Context, moduleID string) error
	Delete(ctx context.Context, id string) error
	DeleteByModule(ctx context.Context, moduleID string) error
}

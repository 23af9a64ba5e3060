package ports

import (
	"context"

	"github.com/craftcrm/platform/internal/core/domain"
)

// TenantRepository defines persistence for tenants. Slug uniqueness is
// enforced by the storage layer; Create returns domain.ErrSlugTaken on a
// collision.
type TenantRepository interface {
	Create(ctx context.Context, t *domain.Tenant) error
	FindByID(ctx context.Context, id string) (*domain.Tenant, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
}

// AppRepository defines persistence for CRM apps.
type AppRepository interface {
	Create(ctx context.Context, app *domain.CrmApp) error
	FindByID(ctx context.Context, id string) (*domain.CrmApp, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.CrmApp, error)
	Delete(ctx context.Context, id string) error
}

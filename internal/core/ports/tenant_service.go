package ports

import (
	"context"

	"github.com/craftcrm/platform/internal/core/domain"
)

// TenantService manages tenant accounts and their generated apps.
type TenantService interface {
	// Create registers a new tenant. The slug must match the lowercase
	// kebab-case pattern and be globally unique.
	Create(ctx context.Context, name, slug, ownerID, plan string) (*domain.Tenant, error)
	Get(ctx context.Context, id string) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	ListApps(ctx context.Context, tenantID string) ([]*domain.CrmApp, error)
}

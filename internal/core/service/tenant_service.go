package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/craftcrm/platform/internal/core/domain"
	"github.com/craftcrm/platform/internal/core/ports"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// TenantService manages the tenant ownership boundary.
type TenantService struct {
	tenants ports.TenantRepository
	apps    ports.AppRepository
	logger  zerolog.Logger
}

func NewTenantService(tenants ports.TenantRepository, apps ports.AppRepository, logger zerolog.Logger) *TenantService {
	return &TenantService{tenants: tenants, apps: apps, logger: logger}
}

// Create registers a tenant. Slugs are URL-safe and globally unique; the
// storage layer's unique index is authoritative under concurrent creates.
func (s *TenantService) Create(ctx context.Context, name, slug, ownerID, plan string) (*domain.Tenant, error) {
	if name == "" || !slugPattern.MatchString(slug) {
		return nil, &domain.ValidationError{Field: "slug", Reason: domain.ReasonType}
	}
	if _, err := s.tenants.FindBySlug(ctx, slug); err == nil {
		return nil, domain.ErrSlugTaken
	}

	if plan == "" {
		plan = "free"
	}
	now := time.Now().UTC()
	tenant := &domain.Tenant{
		ID:        newID(),
		Name:      name,
		Slug:      slug,
		OwnerID:   ownerID,
		Plan:      plan,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}

	s.logger.Info().Str("tenant_id", tenant.ID).Str("slug", slug).Msg("tenant created")
	return tenant, nil
}

func (s *TenantService) Get(ctx context.Context, id string) (*domain.Tenant, error) {
	return s.tenants.FindByID(ctx, id)
}

func (s *TenantService) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	return s.tenants.FindBySlug(ctx, slug)
}

// ListApps returns the tenant's CRM apps.
func (s *TenantService) ListApps(ctx context.Context, tenantID string) ([]*domain.CrmApp, error) {
	if _, err := s.tenants.FindByID(ctx, tenantID); err != nil {
		return nil, fmt.Errorf("list apps: %w", err)
	}
	return s.apps.ListByTenant(ctx, tenantID)
}

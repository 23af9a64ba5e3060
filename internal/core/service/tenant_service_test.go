package service

import (
	"context"
	"errors"
	"testing"

	"github.com/craftcrm/platform/internal/core/domain"
)

type tenantFixture struct {
	tenants *stubTenantRepo
	apps    *stubAppRepo
	svc     *TenantService
}

func newTenantFixture(t *testing.T) *tenantFixture {
	t.Helper()
	f := &tenantFixture{
		tenants: newStubTenantRepo(),
		apps:    newStubAppRepo(),
	}
	f.svc = NewTenantService(f.tenants, f.apps, discardLogger)
	return f
}

func TestTenantService_Create(t *testing.T) {
	f := newTenantFixture(t)

	tenant, err := f.svc.Create(context.Background(), "Acme Corp", "acme-corp", "u1", "pro")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tenant.ID == "" {
		t.Error("expected a generated id")
	}
	if tenant.Plan != "pro" {
		t.Errorf("plan not stored: %q", tenant.Plan)
	}

	stored, err := f.tenants.FindBySlug(context.Background(), "acme-corp")
	if err != nil {
		t.Fatalf("find by slug: %v", err)
	}
	if stored.Name != "Acme Corp" || stored.OwnerID != "u1" {
		t.Errorf("stored tenant wrong: %+v", stored)
	}
}

func TestTenantService_Create_PlanDefaultsToFree(t *testing.T) {
	f := newTenantFixture(t)

	tenant, err := f.svc.Create(context.Background(), "Acme", "acme", "u1", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tenant.Plan != "free" {
		t.Errorf("expected free plan, got %q", tenant.Plan)
	}
}

func TestTenantService_Create_InvalidSlug(t *testing.T) {
	f := newTenantFixture(t)

	bad := []string{"", "Acme", "acme corp", "acme_corp", "-acme", "acme-", "acme--corp"}
	for _, slug := range bad {
		_, err := f.svc.Create(context.Background(), "Acme", slug, "u1", "")
		var verr *domain.ValidationError
		if !errors.As(err, &verr) || verr.Field != "slug" {
			t.Errorf("slug %q: expected slug validation error, got %v", slug, err)
		}
	}
}

func TestTenantService_Create_EmptyNameRejected(t *testing.T) {
	f := newTenantFixture(t)
	var verr *domain.ValidationError
	if _, err := f.svc.Create(context.Background(), "", "acme", "u1", ""); !errors.As(err, &verr) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestTenantService_Create_DuplicateSlug(t *testing.T) {
	f := newTenantFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, "Acme", "acme", "u1", ""); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := f.svc.Create(ctx, "Other Acme", "acme", "u2", ""); !errors.Is(err, domain.ErrSlugTaken) {
		t.Errorf("expected ErrSlugTaken, got %v", err)
	}
}

func TestTenantService_Get_NotFound(t *testing.T) {
	f := newTenantFixture(t)
	if _, err := f.svc.Get(context.Background(), "ghost"); !errors.Is(err, domain.ErrTenantNotFound) {
		t.Errorf("expected ErrTenantNotFound, got %v", err)
	}
	if _, err := f.svc.GetBySlug(context.Background(), "ghost"); !errors.Is(err, domain.ErrTenantNotFound) {
		t.Errorf("expected ErrTenantNotFound, got %v", err)
	}
}

func TestTenantService_ListApps(t *testing.T) {
	f := newTenantFixture(t)
	ctx := context.Background()

	tenant, err := f.svc.Create(ctx, "Acme", "acme", "u1", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.apps.Create(ctx, &domain.CrmApp{ID: "a1", TenantID: tenant.ID, Name: "Sales CRM"}); err != nil {
		t.Fatalf("seed app: %v", err)
	}
	if err := f.apps.Create(ctx, &domain.CrmApp{ID: "a2", TenantID: "other", Name: "Foreign"}); err != nil {
		t.Fatalf("seed app: %v", err)
	}

	apps, err := f.svc.ListApps(ctx, tenant.ID)
	if err != nil {
		t.Fatalf("list apps: %v", err)
	}
	if len(apps) != 1 || apps[0].ID != "a1" {
		t.Errorf("expected only the tenant's own app, got %+v", apps)
	}
}

func TestTenantService_ListApps_TenantMustExist(t *testing.T) {
	f := newTenantFixture(t)
	if _, err := f.svc.ListApps(context.Background(), "ghost"); !errors.Is(err, domain.ErrTenantNotFound) {
		t.Errorf("expected ErrTenantNotFound, got %v", err)
	}
}

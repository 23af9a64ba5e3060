package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/craftcrm/platform/internal/api/metrics"
	"github.com/craftcrm/platform/internal/core/catalog"
	"github.com/craftcrm/platform/internal/core/domain"
	"github.com/craftcrm/platform/internal/core/ports"
)

// GeneratorService instantiates a tenant's working schema from the template
// catalog.
type GeneratorService struct {
	catalog  *catalog.Catalog
	tenants  ports.TenantRepository
	apps     ports.AppRepository
	modules  ports.ModuleRepository
	fields   ports.FieldRepository
	views    ports.ViewRepository
	records  ports.RecordRepository
	cascader *Cascader
	logger   zerolog.Logger
}

func NewGeneratorService(
	cat *catalog.Catalog,
	tenants ports.TenantRepository,
	apps ports.AppRepository,
	modules ports.ModuleRepository,
	fields ports.FieldRepository,
	views ports.ViewRepository,
	records ports.RecordRepository,
	cascader *Cascader,
	logger zerolog.Logger,
) *GeneratorService {
	return &GeneratorService{
		catalog:  cat,
		tenants:  tenants,
		apps:     apps,
		modules:  modules,
		fields:   fields,
		views:    views,
		records:  records,
		cascader: cascader,
		logger:   logger,
	}
}

// CreateCrmFromWizard creates a CRM app and copies the resolved pillar
// templates into live module/field/view rows. Mongo standalone offers no
// multi-document transaction here, so a failure after app creation triggers
// a compensating cascade delete — the caller never observes a half-built app.
func (s *GeneratorService) CreateCrmFromWizard(ctx context.Context, input ports.WizardInput) (*ports.GenerationResult, error) {
	// 1. Resolve the effective pillar set.
	pillars, err := s.resolvePillars(input.BusinessType, input.Pillars)
	if err != nil {
		return nil, err
	}

	if _, err := s.tenants.FindByID(ctx, input.TenantID); err != nil {
		return nil, fmt.Errorf("create crm: %w", err)
	}

	// 2. Create the app row.
	now := time.Now().UTC()
	app := &domain.CrmApp{
		ID:             newID(),
		TenantID:       input.TenantID,
		Name:           input.Name,
		BusinessType:   input.BusinessType,
		EnabledPillars: pillars,
		Branding:       input.Branding,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("create crm: create app: %w", err)
	}

	// 3-4. Copy templates. On failure, roll the app back.
	result, err := s.generateSchema(ctx, app, pillars)
	if err != nil {
		s.logger.Error().Err(err).Str("app_id", app.ID).Msg("generation failed, rolling back app")
		if cleanupErr := s.cascader.DeleteApp(ctx, app.ID); cleanupErr != nil {
			s.logger.Error().Err(cleanupErr).Str("app_id", app.ID).Msg("rollback failed, app left incomplete")
		}
		return nil, err
	}

	metrics.AppsGeneratedTotal.WithLabelValues(input.BusinessType).Inc()
	s.logger.Info().
		Str("app_id", app.ID).
		Str("tenant_id", input.TenantID).
		Strs("pillars", pillars).
		Int("modules", len(result.Modules)).
		Msg("crm app generated")

	return result, nil
}

// generateSchema performs steps 3-4 of the wizard against an existing app.
// The up-front module count check makes a retried generation fail with
// ErrAlreadyGenerated instead of double-creating modules; the per-app unique
// module name index backstops the race between two concurrent retries.
func (s *GeneratorService) generateSchema(ctx context.Context, app *domain.CrmApp, pillars []string) (*ports.GenerationResult, error) {
	existing, err := s.modules.CountByApp(ctx, app.ID)
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}
	if existing > 0 {
		return nil, domain.ErrAlreadyGenerated
	}

	result := &ports.GenerationResult{App: app}
	now := time.Now().UTC()
	moduleOrder := 0

	for _, pillarID := range pillars {
		pillar, ok := s.catalog.PillarByID(pillarID)
		if !ok {
			return nil, domain.ErrInvalidBusinessType
		}

		for _, tmpl := range pillar.Modules {
			module := &domain.Module{
				ID:          newID(),
				AppID:       app.ID,
				Name:        tmpl.Name,
				DisplayName: tmpl.DisplayName,
				SortOrder:   moduleOrder,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			moduleOrder++
			if err := s.modules.Create(ctx, module); err != nil {
				return nil, fmt.Errorf("generate schema: module %s: %w", tmpl.Name, err)
			}
			result.Modules = append(result.Modules, module)

			var listColumns []string
			for i, ft := range tmpl.Fields {
				field := &domain.Field{
					ID:         newID(),
					ModuleID:   module.ID,
					Name:       ft.Name,
					Label:      ft.Label,
					Type:       ft.Type,
					Required:   ft.Required,
					Unique:     ft.Unique,
					Default:    ft.Default,
					Options:    ft.Options,
					SortOrder:  i,
					ShowInList: ft.ShowInList,
					ShowInForm: ft.ShowInForm,
					IsSystem:   ft.IsSystem,
					CreatedAt:  now,
					UpdatedAt:  now,
				}
				if err := s.fields.Create(ctx, field); err != nil {
					return nil, fmt.Errorf("generate schema: field %s.%s: %w", tmpl.Name, ft.Name, err)
				}
				if ft.Unique {
					if err := s.records.EnsureUniqueIndex(ctx, module.ID, ft.Name); err != nil {
						return nil, fmt.Errorf("generate schema: unique index %s.%s: %w", tmpl.Name, ft.Name, err)
					}
				}
				result.Fields = append(result.Fields, field)
				if ft.ShowInList {
					listColumns = append(listColumns, ft.Name)
				}
			}

			view := &domain.View{
				ID:        newID(),
				ModuleID:  module.ID,
				Name:      "All " + tmpl.DisplayName,
				Type:      domain.ViewList,
				Filters:   []domain.ViewFilter{},
				Sort:      []domain.ViewSort{},
				Columns:   listColumns,
				IsDefault: true,
				IsShared:  true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.views.Create(ctx, view); err != nil {
				return nil, fmt.Errorf("generate schema: default view for %s: %w", tmpl.Name, err)
			}
			result.Views = append(result.Views, view)
		}
	}

	return result, nil
}

// PreviewCrmStructure computes the wizard preview without touching storage.
func (s *GeneratorService) PreviewCrmStructure(businessType string) (*ports.StructurePreview, error) {
	pillars, err := s.resolvePillars(businessType, nil)
	if err != nil {
		return nil, err
	}

	preview := &ports.StructurePreview{BusinessType: businessType}
	for _, pillarID := range pillars {
		pillar, ok := s.catalog.PillarByID(pillarID)
		if !ok {
			return nil, domain.ErrInvalidBusinessType
		}
		pp := ports.PillarPreview{ID: pillar.ID, Name: pillar.Name}
		for _, tmpl := range pillar.Modules {
			mp := ports.ModulePreview{
				Name:        tmpl.Name,
				DisplayName: tmpl.DisplayName,
				FieldCount:  len(tmpl.Fields),
			}
			for _, ft := range tmpl.Fields {
				if ft.ShowInList {
					mp.Columns = append(mp.Columns, ft.Name)
				}
			}
			pp.Modules = append(pp.Modules, mp)
		}
		preview.Pillars = append(preview.Pillars, pp)
	}
	return preview, nil
}

// resolvePillars returns the explicit selection when given, validating every
// id, otherwise the business type's default set.
func (s *GeneratorService) resolvePillars(businessType string, explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		for _, id := range explicit {
			if _, ok := s.catalog.PillarByID(id); !ok {
				return nil, domain.ErrInvalidBusinessType
			}
		}
		return explicit, nil
	}
	defaults, ok := s.catalog.DefaultPillars(businessType)
	if !ok {
		return nil, domain.ErrInvalidBusinessType
	}
	return defaults, nil
}

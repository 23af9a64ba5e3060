package ports

import (
	"context"

	"github.com/craftcrm/platform/internal/core/domain"
)

// WizardInput carries the operator's wizard selection driving generation.
// Pillars, when non-empty, overrides the business type's default pillar set.
type WizardInput struct {
	TenantID     string
	Name         string
	BusinessType string
	Pillars      []string
	Branding     domain.Branding
}

// GenerationResult is everything the generator created for the new app.
type GenerationResult struct {
	App     *domain.CrmApp
	Modules []*domain.Module
	Fields  []*domain.Field
	Views   []*domain.View
}

// ModulePreview is the structural summary of one module for wizard preview.
type ModulePreview struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	FieldCount  int      `json:"field_count"`
	Columns     []string `json:"columns"`
}

// PillarPreview groups the modules a pillar would instantiate.
type PillarPreview struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Modules []ModulePreview `json:"modules"`
}

// StructurePreview is the read-only summary returned by PreviewCrmStructure.
type StructurePreview struct {
	BusinessType string          `json:"business_type"`
	Pillars      []PillarPreview `json:"pillars"`
}

// GeneratorService turns a wizard selection into a concrete tenant schema.
type GeneratorService interface {
	// CreateCrmFromWizard resolves the pillar set, creates the app and copies
	// module/field templates into live rows plus one default view per module.
	// Fails with domain.ErrInvalidBusinessType when neither an explicit pillar
	// list nor a known business type is given, and domain.ErrAlreadyGenerated
	// when the app already has modules.
	CreateCrmFromWizard(ctx context.Context, input WizardInput) (*GenerationResult, error)
	// PreviewCrmStructure computes the structural summary without persistence.
	PreviewCrmStructure(businessType string) (*StructurePreview, error)
}

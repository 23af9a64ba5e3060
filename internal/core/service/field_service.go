package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/craftcrm/platform/internal/core/domain"
	"github.com/craftcrm/platform/internal/core/ports"
)

// FieldService manages field definitions of a module.
type FieldService struct {
	modules ports.ModuleRepository
	fields  ports.FieldRepository
	records ports.RecordRepository
	logger  zerolog.Logger
}

func NewFieldService(modules ports.ModuleRepository, fields ports.FieldRepository, records ports.RecordRepository, logger zerolog.Logger) *FieldService {
	return &FieldService{modules: modules, fields: fields, records: records, logger: logger}
}

// Create adds a field to a module. SortOrder is assigned as max existing + 1;
// the field name must not collide with an existing field of the module.
func (s *FieldService) Create(ctx context.Context, appID string, input ports.CreateFieldInput) (*domain.Field, error) {
	if !domain.KnownFieldType(input.Type) {
		return nil, &domain.ValidationError{Field: "type", Reason: domain.ReasonType}
	}
	if _, err := scopedModule(ctx, s.modules, appID, input.ModuleID); err != nil {
		return nil, fmt.Errorf("create field: %w", err)
	}

	existing, err := s.fields.ListByModule(ctx, input.ModuleID)
	if err != nil {
		return nil, fmt.Errorf("create field: %w", err)
	}
	for _, f := range existing {
		if f.Name == input.Name {
			return nil, &domain.ValidationError{Field: "name", Reason: domain.ReasonDuplicate}
		}
	}

	maxOrder, err := s.fields.MaxSortOrder(ctx, input.ModuleID)
	if err != nil {
		return nil, fmt.Errorf("create field: %w", err)
	}

	var coercedDefault any
	now := time.Now().UTC()
	field := &domain.Field{
		ID:         newID(),
		ModuleID:   input.ModuleID,
		Name:       input.Name,
		Label:      input.Label,
		Type:       input.Type,
		Required:   input.Required,
		Unique:     input.Unique,
		Options:    input.Options,
		SortOrder:  maxOrder + 1,
		ShowInList: input.ShowInList,
		ShowInForm: input.ShowInForm,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if input.Default != nil {
		coercedDefault, err = domain.CoerceValue(*field, input.Default)
		if err != nil {
			return nil, err
		}
		field.Default = coercedDefault
	}

	if err := s.fields.Create(ctx, field); err != nil {
		return nil, fmt.Errorf("create field: %w", err)
	}
	if field.Unique {
		if err := s.records.EnsureUniqueIndex(ctx, field.ModuleID, field.Name); err != nil {
			return nil, fmt.Errorf("create field: unique index: %w", err)
		}
	}

	s.logger.Info().Str("module_id", input.ModuleID).Str("field", input.Name).Msg("field created")
	return field, nil
}

// Update applies a partial update. System fields only accept presentation
// changes (label, visibility, sort order).
func (s *FieldService) Update(ctx context.Context, appID, fieldID string, input ports.UpdateFieldInput) (*domain.Field, error) {
	field, err := s.scopedField(ctx, appID, fieldID)
	if err != nil {
		return nil, fmt.Errorf("update field: %w", err)
	}

	if field.IsSystem && (input.Required != nil || input.Options != nil) {
		return nil, domain.ErrSystemField
	}

	if input.Label != nil {
		field.Label = *input.Label
	}
	if input.Required != nil {
		field.Required = *input.Required
	}
	if input.Options != nil {
		field.Options = input.Options
	}
	if input.ShowInList != nil {
		field.ShowInList = *input.ShowInList
	}
	if input.ShowInForm != nil {
		field.ShowInForm = *input.ShowInForm
	}
	if input.SortOrder != nil {
		field.SortOrder = *input.SortOrder
	}
	field.UpdatedAt = time.Now().UTC()

	if err := s.fields.Update(ctx, field); err != nil {
		return nil, fmt.Errorf("update field: %w", err)
	}
	return field, nil
}

// Delete removes a non-system field. Record values stored under the key stay
// in place; view evaluation skips columns without a live field.
func (s *FieldService) Delete(ctx context.Context, appID, fieldID string) error {
	field, err := s.scopedField(ctx, appID, fieldID)
	if err != nil {
		return fmt.Errorf("delete field: %w", err)
	}
	if field.IsSystem {
		return domain.ErrSystemField
	}
	if err := s.fields.Delete(ctx, fieldID); err != nil {
		return fmt.Errorf("delete field: %w", err)
	}
	s.logger.Info().Str("module_id", field.ModuleID).Str("field", field.Name).Msg("field deleted")
	return nil
}

// scopedField loads a field and checks, through its module, that it belongs
// to the caller's app.
func (s *FieldService) scopedField(ctx context.Context, appID, fieldID string) (*domain.Field, error) {
	field, err := s.fields.FindByID(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if _, err := scopedModule(ctx, s.modules, appID, field.ModuleID); err != nil {
		return nil, err
	}
	return field, nil
}

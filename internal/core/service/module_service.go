package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/craftcrm/platform/internal/core/domain"
	"github.com/craftcrm/platform/internal/core/ports"
)

// ModuleService manages live modules after generation.
type ModuleService struct {
	modules  ports.ModuleRepository
	cascader *Cascader
	logger   zerolog.Logger
}

func NewModuleService(modules ports.ModuleRepository, cascader *Cascader, logger zerolog.Logger) *ModuleService {
	return &ModuleService{modules: modules, cascader: cascader, logger: logger}
}

func (s *ModuleService) Get(ctx context.Context, appID, moduleID string) (*domain.Module, error) {
	return scopedModule(ctx, s.modules, appID, moduleID)
}

func (s *ModuleService) ListByApp(ctx context.Context, appID string) ([]*domain.Module, error) {
	return s.modules.ListByApp(ctx, appID)
}

// Rename updates display name and/or sort order. Module.Name (the machine
// key) stays fixed after generation; records reference it implicitly.
func (s *ModuleService) Rename(ctx context.Context, appID, moduleID, displayName string, sortOrder *int) (*domain.Module, error) {
	module, err := scopedModule(ctx, s.modules, appID, moduleID)
	if err != nil {
		return nil, fmt.Errorf("rename module: %w", err)
	}
	if displayName != "" {
		module.DisplayName = displayName
	}
	if sortOrder != nil {
		module.SortOrder = *sortOrder
	}
	module.UpdatedAt = time.Now().UTC()
	if err := s.modules.Update(ctx, module); err != nil {
		return nil, fmt.Errorf("rename module: %w", err)
	}
	return module, nil
}

// Delete removes the module with full cascade through the central Cascader.
func (s *ModuleService) Delete(ctx context.Context, appID, moduleID string) error {
	if _, err := scopedModule(ctx, s.modules, appID, moduleID); err != nil {
		return fmt.Errorf("delete module: %w", err)
	}
	return s.cascader.DeleteModule(ctx, moduleID)
}

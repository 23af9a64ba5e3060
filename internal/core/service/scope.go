package service

import (
	"context"

	"github.com/craftcrm/platform/internal/core/domain"
	"github.com/craftcrm/platform/internal/core/ports"
)

// scopedModule loads a module and enforces the app boundary: every schema,
// record and view operation runs on behalf of one app, and crossing into
// another app's module is Forbidden regardless of the caller's permissions.
func scopedModule(ctx context.Context, modules ports.ModuleRepository, appID, moduleID string) (*domain.Module, error) {
	module, err := modules.FindByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if module.AppID != appID {
		return nil, domain.ErrForbidden
	}
	return module, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/craftcrm/platform/internal/core/ports"
)

// Cascader is the single place deletion fan-out lives. Module deletion
// removes fields, records, views and the records' activity trails; app
// deletion walks every module first. Call sites never cascade by hand.
type Cascader struct {
	apps       ports.AppRepository
	modules    ports.ModuleRepository
	fields     ports.FieldRepository
	records    ports.RecordRepository
	views      ports.ViewRepository
	activities ports.ActivityRepository
	logger     zerolog.Logger
}

func NewCascader(
	apps ports.AppRepository,
	modules ports.ModuleRepository,
	fields ports.FieldRepository,
	records ports.RecordRepository,
	views ports.ViewRepository,
	activities ports.ActivityRepository,
	logger zerolog.Logger,
) *Cascader {
	return &Cascader{
		apps:       apps,
		modules:    modules,
		fields:     fields,
		records:    records,
		views:      views,
		activities: activities,
		logger:     logger,
	}
}

// DeleteModule removes the module and everything owned by it. Children go
// first so a failure mid-way never orphans rows under a deleted parent.
func (c *Cascader) DeleteModule(ctx context.Context, moduleID string) error {
	records, err := c.records.ListAll(ctx, moduleID)
	if err != nil {
		return fmt.Errorf("cascade module %s: list records: %w", moduleID, err)
	}
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	if len(ids) > 0 {
		if err := c.activities.DeleteByRecords(ctx, ids); err != nil {
			return fmt.Errorf("cascade module %s: delete activities: %w", moduleID, err)
		}
	}
	if err := c.records.DeleteByModule(ctx, moduleID); err != nil {
		return fmt.Errorf("cascade module %s: delete records: %w", moduleID, err)
	}
	if err := c.views.DeleteByModule(ctx, moduleID); err != nil {
		return fmt.Errorf("cascade module %s: delete views: %w", moduleID, err)
	}
	if err := c.fields.DeleteByModule(ctx, moduleID); err != nil {
		return fmt.Errorf("cascade module %s: delete fields: %w", moduleID, err)
	}
	if err := c.modules.Delete(ctx, moduleID); err != nil {
		return fmt.Errorf("cascade module %s: delete module: %w", moduleID, err)
	}

	c.logger.Info().Str("module_id", moduleID).Int("records", len(ids)).Msg("module cascade deleted")
	return nil
}

// DeleteApp removes an app and all of its modules. Used by the generator's
// compensating cleanup when generation fails part-way.
func (c *Cascader) DeleteApp(ctx context.Context, appID string) error {
	modules, err := c.modules.ListByApp(ctx, appID)
	if err != nil {
		return fmt.Errorf("cascade app %s: list modules: %w", appID, err)
	}
	for _, m := range modules {
		if err := c.DeleteModule(ctx, m.ID); err != nil {
			return err
		}
	}
	if err := c.apps.Delete(ctx, appID); err != nil {
		return fmt.Errorf("cascade app %s: delete app: %w", appID, err)
	}

	c.logger.Info().Str("app_id", appID).Int("modules", len(modules)).Msg("app cascade deleted")
	return nil
}

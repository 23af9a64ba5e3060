package main

import (
	"context"

	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/craftcrm/platform/internal/infrastructure/db/mongo"
)

// ensureIndexes creates every collection index up front so uniqueness
// guarantees hold from the first request.
func ensureIndexes(ctx context.Context, db *driver.Database) error {
	indexed := []interface {
		EnsureIndexes(ctx context.Context) error
	}{
		mongo.NewTenantRepository(db),
		mongo.NewAppRepository(db),
		mongo.NewModuleRepository(db),
		mongo.NewFieldRepository(db),
		mongo.NewViewRepository(db),
		mongo.NewRecordRepository(db),
		mongo.NewActivityRepository(db),
		mongo.NewUserRepository(db),
		mongo.NewSessionRepository(db),
	}
	for _, repo := range indexed {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}

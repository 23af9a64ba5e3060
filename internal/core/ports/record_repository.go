package ports

import (
	"context"

	"github.com/craftcrm/platform/internal/core/domain"
)

// RecordRepository defines persistence for dynamically-typed records.
type RecordRepository interface {
	Create(ctx context.Context, r *domain.Record) error
	FindByID(ctx context.Context, id string) (*domain.Record, error)
	// List returns a page of the module's records in insertion order.
	List(ctx context.Context, moduleID string, limit, offset int) ([]*domain.Record, error)
	// ListAll returns every record of the module in insertion order. Used by
	// view evaluation and uniqueness pre-checks.
	ListAll(ctx context.Context, moduleID string) ([]*domain.Record, error)
	Count(ctx context.Context, moduleID string) (int64, error)
	// Update persists the record if its stored version still equals
	// fromVersion, bumping the version by one. Returns
	// domain.ErrVersionConflict when another writer got there first.
	Update(ctx context.Context, r *domain.Record, fromVersion int64) error
	// ExistsValue reports whether another record in the module (excluding
	// excludeRecordID) already holds value under the data key fieldName.
	ExistsValue(ctx context.Context, moduleID, fieldName string, value any, excludeRecordID string) (bool, error)
	// EnsureUniqueIndex creates the storage-level unique constraint for a
	// unique field, scoped to the module.
	EnsureUniqueIndex(ctx context.Context, moduleID, fieldName string) error
	Delete(ctx context.Context, id string) error
	DeleteByModule(ctx context.Context, moduleID string) error
}

// ActivityRepository defines the append-only activity trail. Entries are
// never updated; deletion only happens as a cascade of record deletion.
type ActivityRepository interface {
	Append(ctx context.Context, a *domain.Activity) error
	ListByRecord(ctx context.Context, recordID string) ([]*domain.Activity, error)
	DeleteByRecord(ctx context.Context, recordID string) error
	DeleteByRecords(ctx context.Context, recordIDs []string) error
}

package ports

import (
	"context"

	"github.com/craftcrm/platform/internal/core/domain"
)

// ListRecordsInput carries pagination for the record list endpoint. AppID is
// the caller's app; listing a module of another app is Forbidden.
type ListRecordsInput struct {
	AppID    string
	ModuleID string
	Limit    int // capped at 200 by the service; defaults to 50
	Offset   int
}

// ListRecordsResult is the paginated list envelope.
type ListRecordsResult struct {
	Records []*domain.Record
	Total   int64
	Limit   int
	Offset  int
}

// RecordDetail is a record together with its activity trail.
type RecordDetail struct {
	Record     *domain.Record
	Activities []*domain.Activity
}

// RecordService validates and stores schema-less record payloads against a
// module's field definitions. Every operation takes the caller's appID and
// returns domain.ErrForbidden when the target lives in a different app.
type RecordService interface {
	// Create validates data against the module's fields, fills declared
	// defaults for absent keys, and persists a new record.
	Create(ctx context.Context, appID, moduleID string, data map[string]any, authorID string) (*domain.Record, error)
	// Update merge-patches data into the stored record: keys absent from the
	// patch keep their prior values. Touched keys plus all required keys are
	// re-validated.
	Update(ctx context.Context, appID, recordID string, data map[string]any, authorID string) (*domain.Record, error)
	Get(ctx context.Context, appID, recordID string) (*RecordDetail, error)
	List(ctx context.Context, input ListRecordsInput) (*ListRecordsResult, error)
	Count(ctx context.Context, appID, moduleID string) (int64, error)
	// Delete hard-deletes the record and its activity trail.
	Delete(ctx context.Context, appID, recordID string) error
	// AddNote appends a note activity to the record's trail.
	AddNote(ctx context.Context, appID, recordID, content, authorID string) (*domain.Activity, error)
}

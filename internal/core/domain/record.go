package domain

import "time"

// Record is one row of dynamically-typed data belonging to a module. Data maps
// Field.Name to a value whose dynamic type matches the field's declared type
// (see CoerceValue). Version implements optimistic concurrency: updates carry
// the version they read and fail with ErrVersionConflict on a mismatch.
type Record struct {
	ID        string         `json:"id" bson:"_id,omitempty"`
	AppID     string         `json:"app_id" bson:"app_id"`
	ModuleID  string         `json:"module_id" bson:"module_id"`
	Data      map[string]any `json:"data" bson:"data"`
	Version   int64          `json:"version" bson:"version"`
	CreatedBy string         `json:"created_by,omitempty" bson:"created_by,omitempty"`
	UpdatedBy string         `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}

// ActivityType classifies an activity entry.
type ActivityType string

const (
	ActivityNote         ActivityType = "note"
	ActivityStatusChange ActivityType = "status_change"
	ActivitySystem       ActivityType = "system"
)

// Activity is an append-only audit entry attached to a record. Entries are
// never mutated or deleted individually; they only go away when their parent
// record is deleted.
type Activity struct {
	ID        string            `json:"id" bson:"_id,omitempty"`
	RecordID  string            `json:"record_id" bson:"record_id"`
	Type      ActivityType      `json:"type" bson:"type"`
	Content   string            `json:"content" bson:"content"`
	Metadata  map[string]string `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedBy string            `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
}

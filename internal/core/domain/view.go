package domain

import "time"

// ViewType enumerates supported presentation styles.
type ViewType string

const (
	ViewList     ViewType = "list"
	ViewKanban   ViewType = "kanban"
	ViewCalendar ViewType = "calendar"
)

// FilterOperator enumerates the predicates a view filter may apply.
type FilterOperator string

const (
	OpEquals      FilterOperator = "equals"
	OpNotEquals   FilterOperator = "not_equals"
	OpContains    FilterOperator = "contains"
	OpGreaterThan FilterOperator = "greater_than"
	OpLessThan    FilterOperator = "less_than"
	OpIsEmpty     FilterOperator = "is_empty"
	OpIsNotEmpty  FilterOperator = "is_not_empty"
)

// ViewFilter is a single predicate on a field value. Filters within one view
// combine with logical AND.
type ViewFilter struct {
	FieldName string         `json:"field_name" bson:"field_name"`
	Operator  FilterOperator `json:"operator" bson:"operator"`
	Value     any            `json:"value,omitempty" bson:"value,omitempty"`
}

// SortDirection is "asc" or "desc".
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ViewSort is one key of a multi-key sort.
type ViewSort struct {
	FieldName string        `json:"field_name" bson:"field_name"`
	Direction SortDirection `json:"direction" bson:"direction"`
}

// View is a saved filter/sort/column configuration for presenting a module's
// records. Exactly one view per module has IsDefault=true.
type View struct {
	ID        string            `json:"id" bson:"_id,omitempty"`
	ModuleID  string            `json:"module_id" bson:"module_id"`
	Name      string            `json:"name" bson:"name"`
	Type      ViewType          `json:"type" bson:"type"`
	Config    map[string]string `json:"config,omitempty" bson:"config,omitempty"`
	Filters   []ViewFilter      `json:"filters" bson:"filters"`
	Sort      []ViewSort        `json:"sort" bson:"sort"`
	Columns   []string          `json:"columns" bson:"columns"`
	IsDefault bool              `json:"is_default" bson:"is_default"`
	IsShared  bool              `json:"is_shared" bson:"is_shared"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" bson:"updated_at"`
}

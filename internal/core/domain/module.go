package domain

import "time"

// Module is a live entity table within one CRM app, instantiated from a
// catalog template by the generator and freely editable afterwards.
type Module struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	AppID       string            `json:"app_id" bson:"app_id"`
	Name        string            `json:"name" bson:"name"`
	DisplayName string            `json:"display_name" bson:"display_name"`
	SortOrder   int               `json:"sort_order" bson:"sort_order"`
	Config      map[string]string `json:"config,omitempty" bson:"config,omitempty"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" bson:"updated_at"`
}

// Field is a typed, named attribute of a module. Field.Name is the key used
// inside Record.Data and is unique within its module.
type Field struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	ModuleID   string    `json:"module_id" bson:"module_id"`
	Name       string    `json:"name" bson:"name"`
	Label      string    `json:"label" bson:"label"`
	Type       FieldType `json:"type" bson:"type"`
	Required   bool      `json:"required" bson:"required"`
	Unique     bool      `json:"unique" bson:"unique"`
	Default    any       `json:"default,omitempty" bson:"default,omitempty"`
	Options    []string  `json:"options,omitempty" bson:"options,omitempty"`
	SortOrder  int       `json:"sort_order" bson:"sort_order"`
	ShowInList bool      `json:"show_in_list" bson:"show_in_list"`
	ShowInForm bool      `json:"show_in_form" bson:"show_in_form"`
	IsSystem   bool      `json:"is_system" bson:"is_system"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// Package catalog holds the versioned pillar/module/field templates the
// generator instantiates tenant schemas from. The catalog is built once at
// startup and injected; it is immutable and performs no I/O.
package catalog

import (
	"github.com/craftcrm/platform/internal/core/domain"
)

// PillarDefinition is a reusable business-capability template bundling one or
// more module templates. Never persisted per-tenant.
type PillarDefinition struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Color       string
	Modules     []ModuleDefinition
}

// ModuleDefinition is the template a live Module is instantiated from.
type ModuleDefinition struct {
	Name        string
	DisplayName string
	Fields      []FieldDefinition
}

// FieldDefinition is the template a live Field is instantiated from. Name is
// the machine key, unique within the module.
type FieldDefinition struct {
	Name       string
	Label      string
	Type       domain.FieldType
	Required   bool
	Unique     bool
	Default    any
	Options    []string
	ShowInList bool
	ShowInForm bool
	IsSystem   bool
}

// Catalog is the immutable template store. Construct with New and pass by
// reference into the generator.
type Catalog struct {
	version  string
	pillars  []PillarDefinition
	byID     map[string]*PillarDefinition
	defaults map[string][]string
}

// New builds the catalog from the built-in template release.
func New() *Catalog {
	return build(catalogVersion, builtinPillars, businessTypeDefaults)
}

func build(version string, pillars []PillarDefinition, defaults map[string][]string) *Catalog {
	c := &Catalog{
		version:  version,
		pillars:  pillars,
		byID:     make(map[string]*PillarDefinition, len(pillars)),
		defaults: defaults,
	}
	for i := range c.pillars {
		c.byID[c.pillars[i].ID] = &c.pillars[i]
	}
	return c
}

// Version returns the catalog release identifier.
func (c *Catalog) Version() string {
	return c.version
}

// ListPillars returns all pillar templates in catalog order.
func (c *Catalog) ListPillars() []PillarDefinition {
	return c.pillars
}

// PillarByID looks up a single pillar template.
func (c *Catalog) PillarByID(id string) (*PillarDefinition, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// DefaultPillars maps a business type to its recommended starter pillar set.
// The second return is false for unknown business types.
func (c *Catalog) DefaultPillars(businessType string) ([]string, bool) {
	ids, ok := c.defaults[businessType]
	if !ok {
		return nil, false
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, true
}

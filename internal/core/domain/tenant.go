package domain

import "time"

// Tenant is the billing and ownership boundary. Every app, module, record and
// user in the system traces back to exactly one tenant.
type Tenant struct {
	ID        string            `json:"id" bson:"_id,omitempty"`
	Name      string            `json:"name" bson:"name"`
	Slug      string            `json:"slug" bson:"slug"`
	OwnerID   string            `json:"owner_id" bson:"owner_id"`
	Plan      string            `json:"plan" bson:"plan"`
	Branding  Branding          `json:"branding" bson:"branding"`
	Settings  map[string]string `json:"settings,omitempty" bson:"settings,omitempty"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" bson:"updated_at"`
}

// Branding holds presentation-only overrides.
type Branding struct {
	LogoURL      string `json:"logo_url,omitempty" bson:"logo_url,omitempty"`
	PrimaryColor string `json:"primary_color,omitempty" bson:"primary_color,omitempty"`
}

// CrmApp is one generated CRM instance owned by a tenant. A tenant may own
// several apps (multi-CRM workspaces).
type CrmApp struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	TenantID       string    `json:"tenant_id" bson:"tenant_id"`
	Name           string    `json:"name" bson:"name"`
	BusinessType   string    `json:"business_type" bson:"business_type"`
	EnabledPillars []string  `json:"enabled_pillars" bson:"enabled_pillars"`
	Branding       Branding  `json:"branding" bson:"branding"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

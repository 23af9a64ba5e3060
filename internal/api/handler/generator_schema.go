package handler

import "github.com/craftcrm/platform/internal/core/domain"

type brandingRequest struct {
	LogoURL      string `json:"logo_url"`
	PrimaryColor string `json:"primary_color"`
}

type generateCrmRequest struct {
	TenantID     string          `json:"tenant_id"     validate:"required"`
	Name         string          `json:"name"          validate:"required"`
	BusinessType string          `json:"business_type" validate:"required"`
	Pillars      []string        `json:"pillars"`
	Branding     brandingRequest `json:"branding"`
}

type generateCrmResponse struct {
	App     *domain.CrmApp   `json:"app"`
	Modules []*domain.Module `json:"modules"`
	Fields  []*domain.Field  `json:"fields"`
	Views   []*domain.View   `json:"views"`
}

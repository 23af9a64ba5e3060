package handler

import "github.com/craftcrm/platform/internal/core/domain"

type recordPayloadRequest struct {
	Data map[string]any `json:"data" validate:"required"`
}

type addNoteRequest struct {
	Content string `json:"content" validate:"required"`
}

type listRecordsResponse struct {
	Records []*domain.Record `json:"records"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

type recordDetailResponse struct {
	Record     *domain.Record     `json:"record"`
	Activities []*domain.Activity `json:"activities"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

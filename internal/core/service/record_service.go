package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/craftcrm/platform/internal/api/metrics"
	"github.com/craftcrm/platform/internal/core/domain"
	"github.com/craftcrm/platform/internal/core/ports"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// RecordService validates and stores schema-less record payloads against a
// module's field definitions.
type RecordService struct {
	modules    ports.ModuleRepository
	fields     ports.FieldRepository
	records    ports.RecordRepository
	activities ports.ActivityRepository
	logger     zerolog.Logger
}

func NewRecordService(
	modules ports.ModuleRepository,
	fields ports.FieldRepository,
	records ports.RecordRepository,
	activities ports.ActivityRepository,
	logger zerolog.Logger,
) *RecordService {
	return &RecordService{
		modules:    modules,
		fields:     fields,
		records:    records,
		activities: activities,
		logger:     logger,
	}
}

// Create validates data against the module's field set and persists a new
// record. Absent keys with a declared default get the default; the record is
// rejected before persistence on any violation.
func (s *RecordService) Create(ctx context.Context, appID, moduleID string, data map[string]any, authorID string) (*domain.Record, error) {
	module, err := scopedModule(ctx, s.modules, appID, moduleID)
	if err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	fields, err := s.fields.ListByModule(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	clean, err := s.validate(ctx, moduleID, fields, data, "", true)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &domain.Record{
		ID:        newID(),
		AppID:     module.AppID,
		ModuleID:  moduleID,
		Data:      clean,
		Version:   1,
		CreatedBy: authorID,
		UpdatedBy: authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	s.appendSystemActivity(ctx, record.ID, "record created", authorID)
	metrics.RecordsWrittenTotal.WithLabelValues("create").Inc()
	s.logger.Info().Str("record_id", record.ID).Str("module_id", moduleID).Msg("record created")
	return record, nil
}

// Update merge-patches data into the stored record. Keys absent from the
// patch keep their prior values; touched keys plus every required key are
// re-validated. The write is conditioned on the version read here, so a
// concurrent writer surfaces as domain.ErrVersionConflict instead of a
// silent lost update.
func (s *RecordService) Update(ctx context.Context, appID, recordID string, data map[string]any, authorID string) (*domain.Record, error) {
	record, err := s.scopedRecord(ctx, appID, recordID)
	if err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}
	fields, err := s.fields.ListByModule(ctx, record.ModuleID)
	if err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}

	byName := fieldIndex(fields)

	// Reject unknown keys and coerce touched values before merging.
	patch := make(map[string]any, len(data))
	for key, raw := range data {
		field, ok := byName[key]
		if !ok {
			return nil, &domain.ValidationError{Field: key, Reason: domain.ReasonUnknown}
		}
		value, err := domain.CoerceValue(*field, raw)
		if err != nil {
			metrics.ValidationFailuresTotal.WithLabelValues(domain.ReasonType).Inc()
			return nil, err
		}
		patch[key] = value
	}

	merged := make(map[string]any, len(record.Data)+len(patch))
	for k, v := range record.Data {
		merged[k] = v
	}
	for k, v := range patch {
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}

	// Required keys re-validate against the merged state, uniqueness only
	// for keys the patch touched.
	for _, field := range fields {
		if field.Required && domain.IsEmptyValue(merged[field.Name]) {
			metrics.ValidationFailuresTotal.WithLabelValues(domain.ReasonRequired).Inc()
			return nil, &domain.ValidationError{Field: field.Name, Reason: domain.ReasonRequired}
		}
	}
	for key, value := range patch {
		field := byName[key]
		if !field.Unique || domain.IsEmptyValue(value) {
			continue
		}
		taken, err := s.records.ExistsValue(ctx, record.ModuleID, key, value, record.ID)
		if err != nil {
			return nil, fmt.Errorf("update record: uniqueness check: %w", err)
		}
		if taken {
			metrics.ValidationFailuresTotal.WithLabelValues(domain.ReasonDuplicate).Inc()
			return nil, &domain.ValidationError{Field: key, Reason: domain.ReasonDuplicate}
		}
	}

	fromVersion := record.Version
	record.Data = merged
	record.Version = fromVersion + 1
	record.UpdatedBy = authorID
	record.UpdatedAt = time.Now().UTC()

	if err := s.records.Update(ctx, record, fromVersion); err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}

	s.appendSystemActivity(ctx, record.ID, "record updated", authorID)
	metrics.RecordsWrittenTotal.WithLabelValues("update").Inc()
	return record, nil
}

// Get returns the record together with its activity trail.
func (s *RecordService) Get(ctx context.Context, appID, recordID string) (*ports.RecordDetail, error) {
	record, err := s.scopedRecord(ctx, appID, recordID)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	activities, err := s.activities.ListByRecord(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("get record: activities: %w", err)
	}
	return &ports.RecordDetail{Record: record, Activities: activities}, nil
}

// List returns a page of the module's records in insertion order.
func (s *RecordService) List(ctx context.Context, input ports.ListRecordsInput) (*ports.ListRecordsResult, error) {
	if _, err := scopedModule(ctx, s.modules, input.AppID, input.ModuleID); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	records, err := s.records.List(ctx, input.ModuleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	total, err := s.records.Count(ctx, input.ModuleID)
	if err != nil {
		return nil, fmt.Errorf("list records: count: %w", err)
	}

	return &ports.ListRecordsResult{Records: records, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *RecordService) Count(ctx context.Context, appID, moduleID string) (int64, error) {
	if _, err := scopedModule(ctx, s.modules, appID, moduleID); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return s.records.Count(ctx, moduleID)
}

// Delete hard-deletes the record and cascades to its activity trail.
func (s *RecordService) Delete(ctx context.Context, appID, recordID string) error {
	if _, err := s.scopedRecord(ctx, appID, recordID); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if err := s.activities.DeleteByRecord(ctx, recordID); err != nil {
		return fmt.Errorf("delete record: activities: %w", err)
	}
	if err := s.records.Delete(ctx, recordID); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	metrics.RecordsWrittenTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("record_id", recordID).Msg("record deleted")
	return nil
}

// AddNote appends a note activity to the record's trail.
func (s *RecordService) AddNote(ctx context.Context, appID, recordID, content, authorID string) (*domain.Activity, error) {
	if _, err := s.scopedRecord(ctx, appID, recordID); err != nil {
		return nil, fmt.Errorf("add note: %w", err)
	}
	activity := &domain.Activity{
		ID:        newID(),
		RecordID:  recordID,
		Type:      domain.ActivityNote,
		Content:   content,
		CreatedBy: authorID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.activities.Append(ctx, activity); err != nil {
		return nil, fmt.Errorf("add note: %w", err)
	}
	return activity, nil
}

// validate runs the full pipeline for a create payload: unknown keys, type
// coercion, defaults, required presence and uniqueness pre-check. The
// storage-level unique index remains the authority under concurrency.
func (s *RecordService) validate(ctx context.Context, moduleID string, fields []*domain.Field, data map[string]any, excludeRecordID string, applyDefaults bool) (map[string]any, error) {
	byName := fieldIndex(fields)

	clean := make(map[string]any, len(data))
	for key, raw := range data {
		field, ok := byName[key]
		if !ok {
			metrics.ValidationFailuresTotal.WithLabelValues(domain.ReasonUnknown).Inc()
			return nil, &domain.ValidationError{Field: key, Reason: domain.ReasonUnknown}
		}
		value, err := domain.CoerceValue(*field, raw)
		if err != nil {
			metrics.ValidationFailuresTotal.WithLabelValues(domain.ReasonType).Inc()
			return nil, err
		}
		if value != nil {
			clean[key] = value
		}
	}

	if applyDefaults {
		for _, field := range fields {
			if _, present := clean[field.Name]; !present && field.Default != nil {
				clean[field.Name] = field.Default
			}
		}
	}

	for _, field := range fields {
		if field.Required && domain.IsEmptyValue(clean[field.Name]) {
			metrics.ValidationFailuresTotal.WithLabelValues(domain.ReasonRequired).Inc()
			return nil, &domain.ValidationError{Field: field.Name, Reason: domain.ReasonRequired}
		}
	}

	for _, field := range fields {
		if !field.Unique {
			continue
		}
		value, present := clean[field.Name]
		if !present || domain.IsEmptyValue(value) {
			continue
		}
		taken, err := s.records.ExistsValue(ctx, moduleID, field.Name, value, excludeRecordID)
		if err != nil {
			return nil, fmt.Errorf("validate: uniqueness check: %w", err)
		}
		if taken {
			metrics.ValidationFailuresTotal.WithLabelValues(domain.ReasonDuplicate).Inc()
			return nil, &domain.ValidationError{Field: field.Name, Reason: domain.ReasonDuplicate}
		}
	}

	return clean, nil
}

// scopedRecord loads a record and enforces the app boundary. Records carry
// their AppID directly, so no module round-trip is needed.
func (s *RecordService) scopedRecord(ctx context.Context, appID, recordID string) (*domain.Record, error) {
	record, err := s.records.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record.AppID != appID {
		return nil, domain.ErrForbidden
	}
	return record, nil
}

// appendSystemActivity writes an audit entry; failures are logged, not fatal.
func (s *RecordService) appendSystemActivity(ctx context.Context, recordID, content, authorID string) {
	activity := &domain.Activity{
		ID:        newID(),
		RecordID:  recordID,
		Type:      domain.ActivitySystem,
		Content:   content,
		CreatedBy: authorID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.activities.Append(ctx, activity); err != nil {
		s.logger.Warn().Err(err).Str("record_id", recordID).Msg("failed to append system activity")
	}
}

func fieldIndex(fields []*domain.Field) map[string]*domain.Field {
	byName := make(map[string]*domain.Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}
	return byName
}

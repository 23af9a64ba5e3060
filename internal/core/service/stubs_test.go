package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/craftcrm/platform/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories. They mirror the behaviour of the Mongo repos
// (sentinel errors, insertion order, version-conditioned writes) closely
// enough for service-level tests.
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubTenantRepo struct {
	byID map[string]*domain.Tenant
}

func newStubTenantRepo() *stubTenantRepo {
	return &stubTenantRepo{byID: make(map[string]*domain.Tenant)}
}

func (r *stubTenantRepo) Create(_ context.Context, t *domain.Tenant) error {
	for _, existing := range r.byID {
		if existing.Slug == t.Slug {
			return domain.ErrSlugTaken
		}
	}
	clone := *t
	r.byID[t.ID] = &clone
	return nil
}

func (r *stubTenantRepo) FindByID(_ context.Context, id string) (*domain.Tenant, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTenantNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTenantRepo) FindBySlug(_ context.Context, slug string) (*domain.Tenant, error) {
	for _, t := range r.byID {
		if t.Slug == slug {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTenantNotFound
}

type stubAppRepo struct {
	byID map[string]*domain.CrmApp
}

func newStubAppRepo() *stubAppRepo {
	return &stubAppRepo{byID: make(map[string]*domain.CrmApp)}
}

func (r *stubAppRepo) Create(_ context.Context, app *domain.CrmApp) error {
	clone := *app
	r.byID[app.ID] = &clone
	return nil
}

func (r *stubAppRepo) FindByID(_ context.Context, id string) (*domain.CrmApp, error) {
	app, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAppNotFound
	}
	clone := *app
	return &clone, nil
}

func (r *stubAppRepo) ListByTenant(_ context.Context, tenantID string) ([]*domain.CrmApp, error) {
	var out []*domain.CrmApp
	for _, app := range r.byID {
		if app.TenantID == tenantID {
			clone := *app
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubAppRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type stubModuleRepo struct {
	items     []*domain.Module
	createErr error // if set, Create returns this error
}

func newStubModuleRepo() *stubModuleRepo {
	return &stubModuleRepo{}
}

func (r *stubModuleRepo) Create(_ context.Context, m *domain.Module) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.items {
		if existing.AppID == m.AppID && existing.Name == m.Name {
			return domain.ErrModuleExists
		}
	}
	clone := *m
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubModuleRepo) FindByID(_ context.Context, id string) (*domain.Module, error) {
	for _, m := range r.items {
		if m.ID == id {
			clone := *m
			return &clone, nil
		}
	}
	return nil, domain.ErrModuleNotFound
}

func (r *stubModuleRepo) ListByApp(_ context.Context, appID string) ([]*domain.Module, error) {
	var out []*domain.Module
	for _, m := range r.items {
		if m.AppID == appID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubModuleRepo) CountByApp(_ context.Context, appID string) (int64, error) {
	var n int64
	for _, m := range r.items {
		if m.AppID == appID {
			n++
		}
	}
	return n, nil
}

func (r *stubModuleRepo) Update(_ context.Context, m *domain.Module) error {
	for i, existing := range r.items {
		if existing.ID == m.ID {
			clone := *m
			r.items[i] = &clone
			return nil
		}
	}
	return domain.ErrModuleNotFound
}

func (r *stubModuleRepo) Delete(_ context.Context, id string) error {
	for i, m := range r.items {
		if m.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrModuleNotFound
}

type stubFieldRepo struct {
	items      []*domain.Field
	createErr  error // if set, Create returns this error
	failAfterN int   // when > 0, Create fails once this many fields exist
}

func newStubFieldRepo() *stubFieldRepo {
	return &stubFieldRepo{}
}

func (r *stubFieldRepo) Create(_ context.Context, f *domain.Field) error {
	if r.createErr != nil {
		return r.createErr
	}
	if r.failAfterN > 0 && len(r.items) >= r.failAfterN {
		return context.DeadlineExceeded
	}
	clone := *f
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubFieldRepo) FindByID(_ context.Context, id string) (*domain.Field, error) {
	for _, f := range r.items {
		if f.ID == id {
			clone := *f
			return &clone, nil
		}
	}
	return nil, domain.ErrFieldNotFound
}

func (r *stubFieldRepo) ListByModule(_ context.Context, moduleID string) ([]*domain.Field, error) {
	var out []*domain.Field
	for _, f := range r.items {
		if f.ModuleID == moduleID {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubFieldRepo) MaxSortOrder(_ context.Context, moduleID string) (int, error) {
	max := -1
	for _, f := range r.items {
		if f.ModuleID == moduleID && f.SortOrder > max {
			max = f.SortOrder
		}
	}
	return max, nil
}

func (r *stubFieldRepo) Update(_ context.Context, f *domain.Field) error {
	for i, existing := range r.items {
		if existing.ID == f.ID {
			clone := *f
			r.items[i] = &clone
			return nil
		}
	}
	return domain.ErrFieldNotFound
}

func (r *stubFieldRepo) Delete(_ context.Context, id string) error {
	for i, f := range r.items {
		if f.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrFieldNotFound
}

func (r *stubFieldRepo) DeleteByModule(_ context.Context, moduleID string) error {
	kept := r.items[:0]
	for _, f := range r.items {
		if f.ModuleID != moduleID {
			kept = append(kept, f)
		}
	}
	r.items = kept
	return nil
}

type stubViewRepo struct {
	items []*domain.View
}

func newStubViewRepo() *stubViewRepo {
	return &stubViewRepo{}
}

func (r *stubViewRepo) Create(_ context.Context, v *domain.View) error {
	clone := *v
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubViewRepo) FindByID(_ context.Context, id string) (*domain.View, error) {
	for _, v := range r.items {
		if v.ID == id {
			clone := *v
			return &clone, nil
		}
	}
	return nil, domain.ErrViewNotFound
}

func (r *stubViewRepo) ListByModule(_ context.Context, moduleID string) ([]*domain.View, error) {
	var out []*domain.View
	for _, v := range r.items {
		if v.ModuleID == moduleID {
			clone := *v
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubViewRepo) Update(_ context.Context, v *domain.View) error {
	for i, existing := range r.items {
		if existing.ID == v.ID {
			clone := *v
			r.items[i] = &clone
			return nil
		}
	}
	return domain.ErrViewNotFound
}

func (r *stubViewRepo) ClearDefault(_ context.Context, moduleID string) error {
	for _, v := range r.items {
		if v.ModuleID == moduleID {
			v.IsDefault = false
		}
	}
	return nil
}

func (r *stubViewRepo) Delete(_ context.Context, id string) error {
	for i, v := range r.items {
		if v.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrViewNotFound
}

func (r *stubViewRepo) DeleteByModule(_ context.Context, moduleID string) error {
	kept := r.items[:0]
	for _, v := range r.items {
		if v.ModuleID != moduleID {
			kept = append(kept, v)
		}
	}
	r.items = kept
	return nil
}

type stubRecordRepo struct {
	items         []*domain.Record
	uniqueIndexes []string // "<moduleID>.<fieldName>" per EnsureUniqueIndex call
}

func newStubRecordRepo() *stubRecordRepo {
	return &stubRecordRepo{}
}

func (r *stubRecordRepo) Create(_ context.Context, rec *domain.Record) error {
	clone := *rec
	clone.Data = cloneData(rec.Data)
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubRecordRepo) FindByID(_ context.Context, id string) (*domain.Record, error) {
	for _, rec := range r.items {
		if rec.ID == id {
			clone := *rec
			clone.Data = cloneData(rec.Data)
			return &clone, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *stubRecordRepo) List(_ context.Context, moduleID string, limit, offset int) ([]*domain.Record, error) {
	all, _ := r.ListAll(context.Background(), moduleID)
	if offset > len(all) {
		return []*domain.Record{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *stubRecordRepo) ListAll(_ context.Context, moduleID string) ([]*domain.Record, error) {
	var out []*domain.Record
	for _, rec := range r.items {
		if rec.ModuleID == moduleID {
			clone := *rec
			clone.Data = cloneData(rec.Data)
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubRecordRepo) Count(_ context.Context, moduleID string) (int64, error) {
	var n int64
	for _, rec := range r.items {
		if rec.ModuleID == moduleID {
			n++
		}
	}
	return n, nil
}

func (r *stubRecordRepo) Update(_ context.Context, rec *domain.Record, fromVersion int64) error {
	for i, existing := range r.items {
		if existing.ID != rec.ID {
			continue
		}
		if existing.Version != fromVersion {
			return domain.ErrVersionConflict
		}
		clone := *rec
		clone.Data = cloneData(rec.Data)
		r.items[i] = &clone
		return nil
	}
	return domain.ErrRecordNotFound
}

func (r *stubRecordRepo) ExistsValue(_ context.Context, moduleID, fieldName string, value any, excludeRecordID string) (bool, error) {
	for _, rec := range r.items {
		if rec.ModuleID != moduleID || rec.ID == excludeRecordID {
			continue
		}
		if stored, ok := rec.Data[fieldName]; ok && stored == value {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRecordRepo) EnsureUniqueIndex(_ context.Context, moduleID, fieldName string) error {
	r.uniqueIndexes = append(r.uniqueIndexes, moduleID+"."+fieldName)
	return nil
}

func (r *stubRecordRepo) Delete(_ context.Context, id string) error {
	for i, rec := range r.items {
		if rec.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrRecordNotFound
}

func (r *stubRecordRepo) DeleteByModule(_ context.Context, moduleID string) error {
	kept := r.items[:0]
	for _, rec := range r.items {
		if rec.ModuleID != moduleID {
			kept = append(kept, rec)
		}
	}
	r.items = kept
	return nil
}

func (r *stubRecordRepo) hasIndex(suffix string) bool {
	for _, idx := range r.uniqueIndexes {
		if strings.HasSuffix(idx, suffix) {
			return true
		}
	}
	return false
}

func cloneData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

type stubActivityRepo struct {
	items []*domain.Activity
}

func newStubActivityRepo() *stubActivityRepo {
	return &stubActivityRepo{}
}

func (r *stubActivityRepo) Append(_ context.Context, a *domain.Activity) error {
	clone := *a
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubActivityRepo) ListByRecord(_ context.Context, recordID string) ([]*domain.Activity, error) {
	var out []*domain.Activity
	for _, a := range r.items {
		if a.RecordID == recordID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubActivityRepo) DeleteByRecord(_ context.Context, recordID string) error {
	return r.DeleteByRecords(context.Background(), []string{recordID})
}

func (r *stubActivityRepo) DeleteByRecords(_ context.Context, recordIDs []string) error {
	drop := make(map[string]bool, len(recordIDs))
	for _, id := range recordIDs {
		drop[id] = true
	}
	kept := r.items[:0]
	for _, a := range r.items {
		if !drop[a.RecordID] {
			kept = append(kept, a)
		}
	}
	r.items = kept
	return nil
}

type stubUserRepo struct {
	byID map[string]*domain.CrmUser
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.CrmUser)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.CrmUser) error {
	for _, existing := range r.byID {
		if existing.AppID == u.AppID && existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.CrmUser, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, appID, email string) (*domain.CrmUser, error) {
	for _, u := range r.byID {
		if u.AppID == appID && u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListByApp(_ context.Context, appID string) ([]*domain.CrmUser, error) {
	var out []*domain.CrmUser
	for _, u := range r.byID {
		if u.AppID == appID {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubUserRepo) CountByApp(_ context.Context, appID string) (int64, error) {
	var n int64
	for _, u := range r.byID {
		if u.AppID == appID {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.CrmUser) error {
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

type stubSessionRepo struct {
	byToken map[string]*domain.CrmSession
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{byToken: make(map[string]*domain.CrmSession)}
}

func (r *stubSessionRepo) Create(_ context.Context, s *domain.CrmSession) error {
	clone := *s
	r.byToken[s.Token] = &clone
	return nil
}

func (r *stubSessionRepo) FindByToken(_ context.Context, token string) (*domain.CrmSession, error) {
	s, ok := r.byToken[token]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	clone := *s
	return &clone, nil
}

func (r *stubSessionRepo) DeleteByUser(_ context.Context, userID string) error {
	for token, s := range r.byToken {
		if s.UserID == userID {
			delete(r.byToken, token)
		}
	}
	return nil
}

// stubSessionCache counts hits so the cache-first lookup path is observable.
type stubSessionCache struct {
	byToken map[string]*domain.CrmSession
	getErr  error // if set, Get returns this error (cache outage)
	gets    int
	puts    int
}

func newStubSessionCache() *stubSessionCache {
	return &stubSessionCache{byToken: make(map[string]*domain.CrmSession)}
}

func (c *stubSessionCache) Get(_ context.Context, token string) (*domain.CrmSession, error) {
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	s, ok := c.byToken[token]
	if !ok {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

func (c *stubSessionCache) Put(_ context.Context, s *domain.CrmSession) error {
	c.puts++
	clone := *s
	c.byToken[s.Token] = &clone
	return nil
}

func (c *stubSessionCache) RevokeUser(_ context.Context, userID string) error {
	for token, s := range c.byToken {
		if s.UserID == userID {
			delete(c.byToken, token)
		}
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/craftcrm/platform/internal/core/domain"
)

type authFixture struct {
	apps     *stubAppRepo
	users    *stubUserRepo
	sessions *stubSessionRepo
	cache    *stubSessionCache
	svc      *AuthService
}

func newAuthFixture(ttl time.Duration) *authFixture {
	f := &authFixture{
		apps:     newStubAppRepo(),
		users:    newStubUserRepo(),
		sessions: newStubSessionRepo(),
		cache:    newStubSessionCache(),
	}
	f.svc = NewAuthService(f.apps, f.users, f.sessions, f.cache, ttl, discardLogger)

	ctx := context.Background()
	_ = f.apps.Create(ctx, &domain.CrmApp{ID: "app1", TenantID: "t1", Name: "Acme CRM"})
	_ = f.apps.Create(ctx, &domain.CrmApp{ID: "app2", TenantID: "t2", Name: "Other CRM"})
	return f
}

func (f *authFixture) setupOwner(t *testing.T) *domain.CrmUser {
	t.Helper()
	owner, err := f.svc.Setup(context.Background(), "app1", "owner@acme.com", "Owner", "s3cret-pass")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	return owner
}

func TestAuthService_Setup_CreatesOwner(t *testing.T) {
	f := newAuthFixture(0)
	owner := f.setupOwner(t)

	if owner.Role != domain.RoleOwner {
		t.Errorf("expected owner role, got %s", owner.Role)
	}
	if !owner.HasPermission(domain.PermManageApp) {
		t.Error("owner must hold manage_app")
	}
	if !owner.Active {
		t.Error("new users start active")
	}
	if owner.PasswordHash == "" || owner.PasswordHash == "s3cret-pass" {
		t.Error("password must be stored hashed")
	}
}

func TestAuthService_Setup_OnlyOnce(t *testing.T) {
	f := newAuthFixture(0)
	f.setupOwner(t)

	_, err := f.svc.Setup(context.Background(), "app1", "other@acme.com", "Other", "password1")
	if !errors.Is(err, domain.ErrSetupComplete) {
		t.Errorf("expected ErrSetupComplete, got %v", err)
	}
}

func TestAuthService_Setup_IndependentPerApp(t *testing.T) {
	f := newAuthFixture(0)
	f.setupOwner(t)

	if _, err := f.svc.Setup(context.Background(), "app2", "owner@other.com", "Other", "password1"); err != nil {
		t.Errorf("second app's setup must be independent: %v", err)
	}
}

func TestAuthService_Setup_UnknownApp(t *testing.T) {
	f := newAuthFixture(0)

	_, err := f.svc.Setup(context.Background(), "ghost", "owner@acme.com", "Owner", "s3cret-pass")
	if !errors.Is(err, domain.ErrAppNotFound) {
		t.Errorf("expected ErrAppNotFound, got %v", err)
	}
	if n, _ := f.users.CountByApp(context.Background(), "ghost"); n != 0 {
		t.Errorf("no user may be created under an unknown app, got %d", n)
	}
}

func TestAuthService_Invite_StampsPermissions(t *testing.T) {
	f := newAuthFixture(0)
	f.setupOwner(t)

	viewer, err := f.svc.Invite(context.Background(), "app1", "v@acme.com", "Viewer", "password1", domain.RoleViewer)
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if !viewer.HasPermission(domain.PermViewRecords) {
		t.Error("viewer must hold view_records")
	}
	if viewer.HasPermission(domain.PermCreateRecords) {
		t.Error("viewer must not hold create_records")
	}
}

func TestAuthService_Invite_OwnerRoleRejected(t *testing.T) {
	f := newAuthFixture(0)
	f.setupOwner(t)

	if _, err := f.svc.Invite(context.Background(), "app1", "x@acme.com", "X", "password1", domain.RoleOwner); err == nil {
		t.Error("inviting a second owner must fail")
	}
	if _, err := f.svc.Invite(context.Background(), "app1", "x@acme.com", "X", "password1", "superuser"); err == nil {
		t.Error("unknown role must fail")
	}
}

func TestAuthService_Invite_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(0)
	f.setupOwner(t)

	if _, err := f.svc.Invite(context.Background(), "app1", "owner@acme.com", "Dup", "password1", domain.RoleMember); !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture(time.Hour)
	f.setupOwner(t)

	result, err := f.svc.Login(context.Background(), "app1", "owner@acme.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("login must issue a token")
	}
	if _, err := f.sessions.FindByToken(context.Background(), result.Token); err != nil {
		t.Error("session must be persisted")
	}
	if f.cache.puts == 0 {
		t.Error("session must be written through to the cache")
	}
	if _, err := time.Parse(time.RFC3339, result.ExpiresAt); err != nil {
		t.Errorf("expires_at must be RFC3339: %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := newAuthFixture(0)
	f.setupOwner(t)

	_, err := f.svc.Login(context.Background(), "app1", "owner@acme.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailSameError(t *testing.T) {
	// Unknown user and wrong password are indistinguishable to the caller.
	f := newAuthFixture(0)
	f.setupOwner(t)

	_, err := f.svc.Login(context.Background(), "app1", "ghost@acme.com", "s3cret-pass")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	f := newAuthFixture(0)
	owner := f.setupOwner(t)

	owner.Active = false
	_ = f.users.Update(context.Background(), owner)

	_, err := f.svc.Login(context.Background(), "app1", "owner@acme.com", "s3cret-pass")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ValidateSession_CacheMissFallsBackToStore(t *testing.T) {
	f := newAuthFixture(time.Hour)
	f.setupOwner(t)
	result, _ := f.svc.Login(context.Background(), "app1", "owner@acme.com", "s3cret-pass")

	// Simulate a cold cache.
	f.cache.byToken = make(map[string]*domain.CrmSession)
	putsBefore := f.cache.puts

	user, session, err := f.svc.ValidateSession(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if user.Email != "owner@acme.com" || session.Token != result.Token {
		t.Error("wrong user or session resolved")
	}
	if f.cache.puts <= putsBefore {
		t.Error("store hit must repopulate the cache")
	}
}

func TestAuthService_ValidateSession_CacheOutageIsNonFatal(t *testing.T) {
	f := newAuthFixture(time.Hour)
	f.setupOwner(t)
	result, _ := f.svc.Login(context.Background(), "app1", "owner@acme.com", "s3cret-pass")

	f.cache.getErr = errors.New("redis down")

	if _, _, err := f.svc.ValidateSession(context.Background(), result.Token); err != nil {
		t.Errorf("cache outage must not fail authentication: %v", err)
	}
}

func TestAuthService_ValidateSession_Expired(t *testing.T) {
	f := newAuthFixture(time.Hour)
	owner := f.setupOwner(t)

	expired := &domain.CrmSession{
		Token:     "tok-expired",
		UserID:    owner.ID,
		AppID:     "app1",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
		CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
	}
	_ = f.sessions.Create(context.Background(), expired)

	_, _, err := f.svc.ValidateSession(context.Background(), "tok-expired")
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
}

func TestAuthService_ValidateSession_DeactivatedUserRejected(t *testing.T) {
	f := newAuthFixture(time.Hour)
	owner := f.setupOwner(t)
	result, _ := f.svc.Login(context.Background(), "app1", "owner@acme.com", "s3cret-pass")

	owner.Active = false
	_ = f.users.Update(context.Background(), owner)

	if _, _, err := f.svc.ValidateSession(context.Background(), result.Token); err == nil {
		t.Error("deactivated user must not validate")
	}
}

func TestAuthService_ValidateSession_UnknownToken(t *testing.T) {
	f := newAuthFixture(0)
	if _, _, err := f.svc.ValidateSession(context.Background(), "bogus"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout_RevokesAllSessions(t *testing.T) {
	f := newAuthFixture(time.Hour)
	f.setupOwner(t)
	ctx := context.Background()

	first, _ := f.svc.Login(ctx, "app1", "owner@acme.com", "s3cret-pass")
	second, _ := f.svc.Login(ctx, "app1", "owner@acme.com", "s3cret-pass")

	if err := f.svc.Logout(ctx, first.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}

	// Both sessions are gone, not just the presented one.
	for _, token := range []string{first.Token, second.Token} {
		if _, err := f.sessions.FindByToken(ctx, token); err == nil {
			t.Errorf("session %s survived logout", token)
		}
		if _, _, err := f.svc.ValidateSession(ctx, token); err == nil {
			t.Errorf("token %s still validates after logout", token)
		}
	}
	if len(f.cache.byToken) != 0 {
		t.Error("cached sessions must be revoked too")
	}
}

func TestAuthService_ChangeRole_RestampsPermissions(t *testing.T) {
	f := newAuthFixture(0)
	f.setupOwner(t)
	viewer, _ := f.svc.Invite(context.Background(), "app1", "v@acme.com", "V", "password1", domain.RoleViewer)

	updated, err := f.svc.ChangeRole(context.Background(), viewer.ID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("change role: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Errorf("role: expected admin, got %s", updated.Role)
	}
	if !updated.HasPermission(domain.PermManageUsers) {
		t.Error("admin permission set not stamped")
	}

	// The stored user reflects the new set.
	stored, _ := f.users.FindByID(context.Background(), viewer.ID)
	if !stored.HasPermission(domain.PermManageUsers) {
		t.Error("stored permission set not updated")
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newAuthFixture(0)
	owner := f.setupOwner(t)
	ctx := context.Background()

	if err := f.svc.ChangePassword(ctx, owner.ID, "wrong", "new-password"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("wrong current password: expected ErrInvalidCredentials, got %v", err)
	}

	if err := f.svc.ChangePassword(ctx, owner.ID, "s3cret-pass", "new-password"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := f.svc.Login(ctx, "app1", "owner@acme.com", "new-password"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := f.svc.Login(ctx, "app1", "owner@acme.com", "s3cret-pass"); err == nil {
		t.Error("old password must stop working")
	}
}

package ports

import (
	"context"

	"github.com/craftcrm/platform/internal/core/domain"
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	User      *domain.CrmUser
	Token     string
	ExpiresAt string
}

// AuthService implements user lifecycle and session management for one
// CRM app. Sessions are opaque random bearer tokens looked up per request.
type AuthService interface {
	// Setup bootstraps the app's first user as owner. Rejected with
	// domain.ErrSetupComplete once any user exists.
	Setup(ctx context.Context, appID, email, name, password string) (*domain.CrmUser, error)
	// Invite creates a subsequent user with the permission set stamped from
	// the given role.
	Invite(ctx context.Context, appID, email, name, password string, role domain.Role) (*domain.CrmUser, error)
	Login(ctx context.Context, appID, email, password string) (*LoginResult, error)
	ListUsers(ctx context.Context, appID string) ([]*domain.CrmUser, error)
	// ValidateSession resolves a bearer token to its (still active) user.
	ValidateSession(ctx context.Context, token string) (*domain.CrmUser, *domain.CrmSession, error)
	// Logout revokes every session of the user owning the token.
	Logout(ctx context.Context, token string) error
	// ChangeRole updates the user's role and re-stamps the stored permission
	// set in the same write.
	ChangeRole(ctx context.Context, userID string, role domain.Role) (*domain.CrmUser, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
}

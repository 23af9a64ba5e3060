package ports

import (
	"context"

	"github.com/craftcrm/platform/internal/core/domain"
)

// UserRepository defines persistence for CRM users.
type UserRepository interface {
	Create(ctx context.Context, u *domain.CrmUser) error
	FindByID(ctx context.Context, id string) (*domain.CrmUser, error)
	FindByEmail(ctx context.Context, appID, email string) (*domain.CrmUser, error)
	ListByApp(ctx context.Context, appID string) ([]*domain.CrmUser, error)
	CountByApp(ctx context.Context, appID string) (int64, error)
	Update(ctx context.Context, u *domain.CrmUser) error
}

// SessionRepository defines persistence for bearer sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.CrmSession) error
	FindByToken(ctx context.Context, token string) (*domain.CrmSession, error)
	// DeleteByUser removes every session belonging to the user ("log out
	// everywhere" semantics).
	DeleteByUser(ctx context.Context, userID string) error
}

// SessionCache is the fast-path token lookup in front of SessionRepository.
// All methods are best-effort: cache failures must not fail authentication.
type SessionCache interface {
	Get(ctx context.Context, token string) (*domain.CrmSession, error)
	Put(ctx context.Context, s *domain.CrmSession) error
	// RevokeUser drops every cached session of the user.
	RevokeUser(ctx context.Context, userID string) error
}

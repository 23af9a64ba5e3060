package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/craftcrm/platform/internal/core/domain"
	"github.com/craftcrm/platform/internal/core/ports"
)

// AuthService implements user lifecycle and opaque-token sessions.
type AuthService struct {
	apps     ports.AppRepository
	users    ports.UserRepository
	sessions ports.SessionRepository
	cache    ports.SessionCache
	tokenTTL time.Duration
	logger   zerolog.Logger
}

func NewAuthService(
	apps ports.AppRepository,
	users ports.UserRepository,
	sessions ports.SessionRepository,
	cache ports.SessionCache,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{apps: apps, users: users, sessions: sessions, cache: cache, tokenTTL: tokenTTL, logger: logger}
}

// Setup bootstraps the app's first user as owner. The app must have been
// generated already; rejected once any user exists for it.
func (s *AuthService) Setup(ctx context.Context, appID, email, name, password string) (*domain.CrmUser, error) {
	if _, err := s.apps.FindByID(ctx, appID); err != nil {
		return nil, err
	}
	count, err := s.users.CountByApp(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	if count > 0 {
		return nil, domain.ErrSetupComplete
	}
	return s.createUser(ctx, appID, email, name, password, domain.RoleOwner)
}

// Invite creates a subsequent user with the permission set stamped from the
// given role.
func (s *AuthService) Invite(ctx context.Context, appID, email, name, password string, role domain.Role) (*domain.CrmUser, error) {
	if !domain.KnownRole(role) || role == domain.RoleOwner {
		return nil, domain.ErrInvalidCredentials
	}
	return s.createUser(ctx, appID, email, name, password, role)
}

func (s *AuthService) createUser(ctx context.Context, appID, email, name, password string, role domain.Role) (*domain.CrmUser, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.CrmUser{
		ID:           newID(),
		AppID:        appID,
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		Permissions:  domain.PermissionsForRole(role),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("app_id", appID).Str("user_id", user.ID).Str("role", string(role)).Msg("user created")
	return user, nil
}

// Login verifies credentials and issues a new session. Multiple concurrent
// sessions per user are allowed.
func (s *AuthService) Login(ctx context.Context, appID, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, appID, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	session := &domain.CrmSession{
		Token:     newToken(),
		UserID:    user.ID,
		AppID:     user.AppID,
		ExpiresAt: now.Add(s.tokenTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := s.cache.Put(ctx, session); err != nil {
		s.logger.Warn().Err(err).Msg("session cache put failed")
	}

	return &ports.LoginResult{
		User:      user,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	}, nil
}

// ValidateSession resolves a bearer token: cache first, store on a miss, then
// expiry check and a re-fetch of the possibly since-deactivated user.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.CrmUser, *domain.CrmSession, error) {
	if token == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := s.cache.Get(ctx, token)
	if err != nil || session == nil {
		if err != nil {
			s.logger.Warn().Err(err).Msg("session cache get failed")
		}
		session, err = s.sessions.FindByToken(ctx, token)
		if err != nil {
			return nil, nil, domain.ErrInvalidCredentials
		}
		if putErr := s.cache.Put(ctx, session); putErr != nil {
			s.logger.Warn().Err(putErr).Msg("session cache put failed")
		}
	}

	if session.Expired(time.Now().UTC()) {
		return nil, nil, domain.ErrSessionExpired
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, nil, domain.ErrInvalidCredentials
	}
	return user, session, nil
}

// Logout revokes every session belonging to the user owning the presented
// token ("log out everywhere").
func (s *AuthService) Logout(ctx context.Context, token string) error {
	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		return domain.ErrInvalidCredentials
	}
	if err := s.sessions.DeleteByUser(ctx, session.UserID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if err := s.cache.RevokeUser(ctx, session.UserID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", session.UserID).Msg("session cache revoke failed")
	}
	s.logger.Info().Str("user_id", session.UserID).Msg("all sessions revoked")
	return nil
}

func (s *AuthService) ListUsers(ctx context.Context, appID string) ([]*domain.CrmUser, error) {
	return s.users.ListByApp(ctx, appID)
}

// ChangeRole updates the role and re-stamps the permission set in a single
// repository write (role and permissions never diverge).
func (s *AuthService) ChangeRole(ctx context.Context, userID string, role domain.Role) (*domain.CrmUser, error) {
	if !domain.KnownRole(role) {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("change role: %w", err)
	}

	user.Role = role
	user.Permissions = domain.PermissionsForRole(role)
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("change role: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Str("role", string(role)).Msg("role changed, permissions re-stamped")
	return user, nil
}

// ChangePassword requires the current password to verify before rehashing.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if next == "" {
		return domain.ErrInvalidCredentials
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}

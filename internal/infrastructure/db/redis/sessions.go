package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/craftcrm/platform/internal/core/domain"
)

// Session cache key formats:
//
//	session:<token>        → JSON-encoded CrmSession, TTL = remaining lifetime
//	user_sessions:<userID> → set of the user's cached tokens
//
// The per-user set is what makes logout-everywhere able to purge the cache:
// revoking by user id deletes every member token in one pass.
type SessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a SessionCache wrapping the given Redis client.
func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

// Get returns the cached session for token, or (nil, nil) on a cache miss.
func (c *SessionCache) Get(ctx context.Context, token string) (*domain.CrmSession, error) {
	raw, err := c.client.Get(ctx, c.sessionKey(token)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session cache get: %w", err)
	}

	var s domain.CrmSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("session cache decode: %w", err)
	}
	return &s, nil
}

// Put caches the session for its remaining lifetime and registers the token
// under the user's set.
func (c *SessionCache) Put(ctx context.Context, s *domain.CrmSession) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session cache encode: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, c.sessionKey(s.Token), raw, ttl)
	pipe.SAdd(ctx, c.userKey(s.UserID), s.Token)
	pipe.Expire(ctx, c.userKey(s.UserID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session cache put: %w", err)
	}
	return nil
}

// RevokeUser drops every cached session of the user.
func (c *SessionCache) RevokeUser(ctx context.Context, userID string) error {
	tokens, err := c.client.SMembers(ctx, c.userKey(userID)).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("session cache revoke: %w", err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, c.sessionKey(token))
	}
	keys = append(keys, c.userKey(userID))
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("session cache revoke: %w", err)
	}
	return nil
}

func (c *SessionCache) sessionKey(token string) string {
	return "session:" + token
}

func (c *SessionCache) userKey(userID string) string {
	return "user_sessions:" + userID
}

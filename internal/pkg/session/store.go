// internal/pkg/session/store.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	xerrors "helios-service/internal/pkg/errors"
)

// Store keeps active sessions in Redis, keyed by token JTI. Redis TTLs do the
// expiry, so no sweeper is needed.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Create stores a new session with a TTL matching its expiry.
func (s *Store) Create(ctx context.Context, data *SessionData) error {
	ttl := time.Until(data.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(data.JTI), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get fetches a session by JTI. A missing key means the session was revoked or
// aged out.
func (s *Store) Get(ctx context.Context, jti string) (*SessionData, error) {
	raw, err := s.client.Get(ctx, s.key(jti)).Bytes()
	if err == redis.Nil {
		return nil, xerrors.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var data SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &data, nil
}

// Touch updates the last activity timestamp without extending the TTL.
func (s *Store) Touch(ctx context.Context, jti string) error {
	data, err := s.Get(ctx, jti)
	if err != nil {
		return err
	}

	data.LastActivityAt = time.Now()

	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	ttl := time.Until(data.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, s.key(jti), raw, ttl).Err()
}

// Invalidate revokes a session.
func (s *Store) Invalidate(ctx context.Context, jti string) error {
	return s.client.Del(ctx, s.key(jti)).Err()
}

// InvalidateAll revokes every active session.
func (s *Store) InvalidateAll(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, "session:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete session %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

func (s *Store) key(jti string) string {
	return fmt.Sprintf("session:%s", jti)
}

// internal/pkg/session/rate_limiter.go
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	maxLoginAttempts = 5
	loginWindow      = 15 * time.Minute
)

// RateLimiter throttles login attempts per client IP.
type RateLimiter struct {
	client *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// CheckLoginAttempt counts an attempt and reports whether it is still allowed
// and how many attempts remain in the window.
func (r *RateLimiter) CheckLoginAttempt(ctx context.Context, ip string) (bool, int64, error) {
	key := fmt.Sprintf("ratelimit:login:%s", ip)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment login attempt: %w", err)
	}

	if count == 1 {
		r.client.Expire(ctx, key, loginWindow)
	}

	remaining := int64(maxLoginAttempts) - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= maxLoginAttempts, remaining, nil
}

// ResetLoginAttempts clears the counter after a successful login.
func (r *RateLimiter) ResetLoginAttempts(ctx context.Context, ip string) error {
	return r.client.Del(ctx, fmt.Sprintf("ratelimit:login:%s", ip)).Err()
}

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fintrack-platform/pkg/utils"

	"github.com/redis/go-redis/v9"
)

const (
	loginAttemptLimit  = 5
	loginAttemptWindow = 15 * time.Minute
)

// LoginLimiter throttles credential checks per IP+email pair.
// Counters live in Redis so limits hold across API replicas.
type LoginLimiter struct {
	rdb *redis.Client
}

func NewLoginLimiter(rdb *redis.Client) *LoginLimiter {
	return &LoginLimiter{rdb: rdb}
}

// Allow records an attempt and reports whether it is within the window limit.
// A nil client disables limiting (useful for tests and local runs without Redis).
func (l *LoginLimiter) Allow(ctx context.Context, ip, email string) (bool, error) {
	if l == nil || l.rdb == nil {
		return true, nil
	}
	count, err := utils.CountInWindow(ctx, l.rdb, loginKey(ip, email), loginAttemptWindow)
	if err != nil {
		return false, fmt.Errorf("login rate limit: %w", err)
	}
	return count <= loginAttemptLimit, nil
}

// Reset clears the attempt counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, ip, email string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return utils.ResetWindow(ctx, l.rdb, loginKey(ip, email))
}

func loginKey(ip, email string) string {
	return fmt.Sprintf("ratelimit:login:%s:%s", ip, strings.ToLower(email))
}

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrResetTokenInvalid covers unknown, expired, and already-consumed tokens.
// Callers must not distinguish the three cases in responses.
var ErrResetTokenInvalid = errors.New("reset token is invalid or expired")

// ResetStore keeps single-use password reset tokens in redis.
// A token maps to the user it was issued for and disappears on consume
// or after TTL, whichever comes first.
type ResetStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewResetStore(rdb *redis.Client, ttl time.Duration) *ResetStore {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &ResetStore{rdb: rdb, ttl: ttl}
}

func resetKey(token string) string {
	return "reset:" + token
}

// Create issues a fresh opaque token for the user and stores it with TTL.
func (s *ResetStore) Create(ctx context.Context, orgID, userID string) (string, error) {
	if s.rdb == nil {
		return "", fmt.Errorf("redis client is nil")
	}
	if orgID == "" || userID == "" {
		return "", fmt.Errorf("org id and user id are required")
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.rdb.Set(ctx, resetKey(token), orgID+":"+userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}
	return token, nil
}

// Consume atomically fetches and deletes the token, returning the org and
// user it belongs to. A second Consume of the same token fails.
func (s *ResetStore) Consume(ctx context.Context, token string) (orgID, userID string, err error) {
	if s.rdb == nil {
		return "", "", fmt.Errorf("redis client is nil")
	}
	if token == "" {
		return "", "", ErrResetTokenInvalid
	}

	val, err := s.rdb.GetDel(ctx, resetKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", "", ErrResetTokenInvalid
	}
	if err != nil {
		return "", "", fmt.Errorf("consume reset token: %w", err)
	}

	orgID, userID, ok := strings.Cut(val, ":")
	if !ok || orgID == "" || userID == "" {
		return "", "", ErrResetTokenInvalid
	}
	return orgID, userID, nil
}

package store

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// SessionStore maps opaque session tokens to user ids with a TTL. Tokens are
// generated by the auth handlers; nothing here inspects their shape.
type SessionStore struct {
	kv  KV
	ttl time.Duration
}

func NewSessionStore(kv KV, ttl time.Duration) *SessionStore {
	return &SessionStore{kv: kv, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *SessionStore) Save(ctx context.Context, token string, userID int64) error {
	return s.kv.Set(ctx, sessionKey(token), strconv.FormatInt(userID, 10), s.ttl)
}

// Resolve returns the user id bound to token, or ErrMiss when the token is
// unknown or expired.
func (s *SessionStore) Resolve(ctx context.Context, token string) (int64, error) {
	val, err := s.kv.Get(ctx, sessionKey(token))
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value for token: %w", err)
	}
	return id, nil
}

func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	return s.kv.Del(ctx, sessionKey(token))
}

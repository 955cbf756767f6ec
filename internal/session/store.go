package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Binding is the server-side identity a token resolves to.
type Binding struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

// Store keeps opaque session tokens server-side. A token that does not
// resolve is the anonymous state, not an error.
type Store interface {
	Save(ctx context.Context, token string, binding Binding, ttl time.Duration) error
	Resolve(ctx context.Context, token string) (*Binding, error)
	Delete(ctx context.Context, token string) error
}

// NewToken generates a 256-bit opaque session token.
func NewToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

const keyPrefix = "sess:"

// RedisStore persists token bindings in Redis with a TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a RedisStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save records the binding under the token key for the session lifetime.
func (s *RedisStore) Save(ctx context.Context, token string, binding Binding, ttl time.Duration) error {
	payload, err := json.Marshal(binding)
	if err != nil {
		return fmt.Errorf("marshal session binding: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+token, payload, ttl).Err(); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}
	return nil
}

// Resolve returns the binding for a token, or nil when the token is unknown
// or expired.
func (s *RedisStore) Resolve(ctx context.Context, token string) (*Binding, error) {
	raw, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve session token: %w", err)
	}
	var binding Binding
	if err := json.Unmarshal(raw, &binding); err != nil {
		return nil, fmt.Errorf("decode session binding: %w", err)
	}
	return &binding, nil
}

// Delete removes the token binding, ending the session server-side.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session token: %w", err)
	}
	return nil
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/ports"
)

// CredentialStore keeps the session credential in Redis so several processes
// on one machine or across hosts share a login.
// Key format: <prefix>:credential. The key expires when the validity window does.
type CredentialStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	now    func() time.Time
}

// NewCredentialStore wraps client. ttl is the session validity window.
func NewCredentialStore(client *redis.Client, prefix string, ttl time.Duration) *CredentialStore {
	if prefix == "" {
		prefix = "scout"
	}
	if ttl <= 0 {
		ttl = domain.DefaultSessionTTL
	}
	return &CredentialStore{
		client: client,
		key:    prefix + ":credential",
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *CredentialStore) Load(ctx context.Context) (*domain.StoredCredential, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrNoCredential
	}
	if err != nil {
		return nil, fmt.Errorf("credential load: %w", err)
	}

	var cred domain.StoredCredential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("credential decode: %w", err)
	}
	return &cred, nil
}

// Save stores cred with an expiry of whatever remains of its window. A
// credential already past its window is not stored.
func (s *CredentialStore) Save(ctx context.Context, cred domain.StoredCredential) error {
	remaining := s.ttl
	if !cred.IssuedAt.IsZero() {
		remaining = s.ttl - s.now().Sub(cred.IssuedAt)
	}
	if remaining <= 0 {
		return s.Clear(ctx)
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("credential encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, remaining).Err(); err != nil {
		return fmt.Errorf("credential save: %w", err)
	}
	return nil
}

func (s *CredentialStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("credential clear: %w", err)
	}
	return nil
}

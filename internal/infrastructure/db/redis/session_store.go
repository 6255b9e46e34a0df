package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pawprint/adoption-site/internal/core/domain"
)

// SessionStore keeps sessions as Redis hashes.
// Key format: session:<id> → {handle, name, role}
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save writes the identity and (re)sets the expiry in one round trip.
func (s *SessionStore) Save(ctx context.Context, id string, who domain.Identity, ttl time.Duration) error {
	key := s.key(id)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key, "handle", who.Handle, "name", who.Name, "role", string(who.Role))
		p.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the identity and slides the expiry by ttl.
func (s *SessionStore) Load(ctx context.Context, id string, ttl time.Duration) (domain.Identity, error) {
	key := s.key(id)
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return domain.Anonymous, fmt.Errorf("load session: %w", err)
	}
	if len(fields) == 0 {
		return domain.Anonymous, domain.ErrSessionNotFound
	}

	if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
		return domain.Anonymous, fmt.Errorf("touch session: %w", err)
	}

	return domain.Identity{
		Handle: fields["handle"],
		Name:   fields["name"],
		Role:   domain.Role(fields["role"]),
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}

package ports

import (
	"context"
	"time"

	"github.com/pawprint/adoption-site/internal/core/domain"
)

// SessionStore maps opaque session ids to identities with an inactivity TTL.
type SessionStore interface {
	Save(ctx context.Context, id string, who domain.Identity, ttl time.Duration) error
	// Load returns the identity and slides the expiry forward by ttl.
	// domain.ErrSessionNotFound when the id is unknown or expired.
	Load(ctx context.Context, id string, ttl time.Duration) (domain.Identity, error)
	Delete(ctx context.Context, id string) error
}

// Locker serialises mutations that touch the same key across requests.
type Locker interface {
	// Lock acquires key or fails with domain.ErrConflict when it is held.
	// The returned function releases the lock.
	Lock(ctx context.Context, key string) (func(), error)
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pawprint/adoption-site/internal/core/domain"
)

const defaultLockTTL = time.Minute

// releaseScript deletes the lock only if it still holds our token, so a
// holder whose lock expired never frees someone else's.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker provides short-lived mutual exclusion across requests.
// Key format: lock:<key>
type Locker struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewLocker(client *redis.Client, ttl time.Duration, log zerolog.Logger) *Locker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &Locker{client: client, ttl: ttl, log: log}
}

// Lock acquires key without waiting. A held lock is reported as
// domain.ErrConflict so the caller can surface it instead of blocking.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	k := "lock:" + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, k, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w: %w", key, domain.ErrStorage, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s is being modified", domain.ErrConflict, key)
	}

	return func() {
		// The request context may already be cancelled.
		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{k}, token).Err(); err != nil {
			l.log.Warn().Err(err).Str("key", k).Msg("failed to release lock")
		}
	}, nil
}

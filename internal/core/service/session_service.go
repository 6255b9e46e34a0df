package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pawprint/adoption-site/internal/core/domain"
	"github.com/pawprint/adoption-site/internal/core/ports"
)

// MaxSessionAge bounds a token regardless of activity.
const MaxSessionAge = 7 * 24 * time.Hour

// SessionService issues signed session tokens. The token only carries the
// session id; identity lives in the SessionStore so logout takes effect
// immediately.
type SessionService struct {
	store  ports.SessionStore
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger
}

func NewSessionService(store ports.SessionStore, secret string, ttl time.Duration, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &SessionService{store: store, secret: []byte(secret), ttl: ttl, log: log}
}

// TTL is the inactivity window after which a session expires.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Establish stores a new session for account and returns its signed token.
func (s *SessionService) Establish(ctx context.Context, account *domain.Account) (string, error) {
	sid := uuid.NewString()
	if err := s.store.Save(ctx, sid, account.Identity(), s.ttl); err != nil {
		return "", fmt.Errorf("establish session: %w", err)
	}
	return s.sign(sid)
}

// Identify resolves token to an identity. Every failure yields Anonymous.
func (s *SessionService) Identify(ctx context.Context, token string) domain.Identity {
	sid, err := s.parse(token)
	if err != nil {
		return domain.Anonymous
	}
	who, err := s.store.Load(ctx, sid, s.ttl)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			s.log.Warn().Err(err).Msg("session lookup failed")
		}
		return domain.Anonymous
	}
	return who
}

// Refresh rebinds the session behind token to the account's current identity.
func (s *SessionService) Refresh(ctx context.Context, token string, account *domain.Account) error {
	sid, err := s.parse(token)
	if err != nil {
		return domain.ErrSessionNotFound
	}
	if err := s.store.Save(ctx, sid, account.Identity(), s.ttl); err != nil {
		return fmt.Errorf("refresh session: %w", err)
	}
	return nil
}

// Destroy invalidates the session. Unknown or malformed tokens are a no-op;
// only store failures are reported, as domain.ErrSession.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	sid, err := s.parse(token)
	if err != nil {
		return nil
	}
	if err := s.store.Delete(ctx, sid); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSession, err)
	}
	return nil
}

func (s *SessionService) sign(sid string) (string, error) {
	now := time.Now()
	// The store enforces inactivity; exp only bounds a stolen cookie.
	claims := jwt.RegisteredClaims{
		ID:        sid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(MaxSessionAge)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *SessionService) parse(token string) (string, error) {
	if token == "" {
		return "", domain.ErrSessionNotFound
	}
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid || claims.ID == "" {
		return "", domain.ErrSessionNotFound
	}
	return claims.ID, nil
}

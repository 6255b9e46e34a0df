package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawprint/adoption-site/internal/core/domain"
	"github.com/pawprint/adoption-site/internal/core/ports"
)

// AccountService implements registration, login and profile edits.
type AccountService struct {
	repo      ports.AccountRepository
	gate      ports.AccessGate
	cost      int
	dummyHash []byte
	log       zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, gate ports.AccessGate, cost int, log zerolog.Logger) *AccountService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// Compared against for unknown handles so login timing is uniform.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	return &AccountService{repo: repo, gate: gate, cost: cost, dummyHash: dummy, log: log}
}

// Register creates a client account.
func (s *AccountService) Register(ctx context.Context, name, handle, password string) (*domain.Account, error) {
	return s.create(ctx, name, handle, password, domain.RoleClient)
}

// RegisterStaff creates a staff account when secret passes the access gate.
// A wrong secret is reported as ErrForbidden.
func (s *AccountService) RegisterStaff(ctx context.Context, secret, name, handle, password string) (*domain.Account, error) {
	if !s.gate.Check(secret) {
		return nil, domain.ErrForbidden
	}
	return s.create(ctx, name, handle, password, domain.RoleStaff)
}

func (s *AccountService) create(ctx context.Context, name, handle, password string, role domain.Role) (*domain.Account, error) {
	name, handle = strings.TrimSpace(name), strings.TrimSpace(handle)
	if name == "" || handle == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Account{
		Name:         name,
		Handle:       handle,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("handle", created.Handle).Str("role", string(created.Role)).Msg("account registered")
	return created, nil
}

// Authenticate verifies a handle/password pair. Callers must not surface the
// difference between ErrAccountNotFound and ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, handle, password string) (*domain.Account, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	account, err := s.repo.FindByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}

// UpdateProfile renames the caller's account. Adoption requests made under
// the old handle keep it.
func (s *AccountService) UpdateProfile(ctx context.Context, who domain.Identity, newName, newHandle string) (*domain.Account, error) {
	if err := domain.RequireRole(who); err != nil {
		return nil, err
	}
	newName, newHandle = strings.TrimSpace(newName), strings.TrimSpace(newHandle)
	if newName == "" || newHandle == "" {
		return nil, domain.ErrMissingFields
	}

	updated, err := s.repo.UpdateProfile(ctx, who.Handle, newName, newHandle)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.log.Info().Str("handle", who.Handle).Str("new_handle", updated.Handle).Msg("profile updated")
	return updated, nil
}

// Profile returns the caller's account.
func (s *AccountService) Profile(ctx context.Context, who domain.Identity) (*domain.Account, error) {
	if err := domain.RequireRole(who); err != nil {
		return nil, err
	}
	return s.repo.FindByHandle(ctx, who.Handle)
}

package ports

import (
	"context"

	"github.com/pawprint/adoption-site/internal/core/domain"
)

// AccountRepository defines the interface for account persistence.
type AccountRepository interface {
	// Create inserts the account and returns it with its ID populated.
	// A handle collision yields domain.ErrDuplicateHandle.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByHandle(ctx context.Context, handle string) (*domain.Account, error)
	// UpdateProfile renames the account identified by handle in place.
	UpdateProfile(ctx context.Context, handle, newName, newHandle string) (*domain.Account, error)
}

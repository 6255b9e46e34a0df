package ports

import (
	"context"
	"time"

	"github.com/pawprint/adoption-site/internal/core/domain"
)

// AccountService is the credential store use-case surface.
type AccountService interface {
	Register(ctx context.Context, name, handle, password string) (*domain.Account, error)
	RegisterStaff(ctx context.Context, secret, name, handle, password string) (*domain.Account, error)
	Authenticate(ctx context.Context, handle, password string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, who domain.Identity, newName, newHandle string) (*domain.Account, error)
	Profile(ctx context.Context, who domain.Identity) (*domain.Account, error)
}

// SessionService binds identities to signed session tokens.
type SessionService interface {
	Establish(ctx context.Context, account *domain.Account) (string, error)
	Identify(ctx context.Context, token string) domain.Identity
	Refresh(ctx context.Context, token string, account *domain.Account) error
	Destroy(ctx context.Context, token string) error
}

// CreateListingInput carries the fields of the add-listing form.
type CreateListingInput struct {
	Name        string
	Description string
	BirthDate   *time.Time
	Image       []byte // optional
}

// ListingService manages adoptable-animal listings.
type ListingService interface {
	Create(ctx context.Context, who domain.Identity, in CreateListingInput) (*domain.Listing, error)
	List(ctx context.Context, who domain.Identity) ([]*domain.Listing, error)
	Image(ctx context.Context, who domain.Identity, id string) (*domain.Image, error)
	Remove(ctx context.Context, who domain.Identity, id string) error
}

// AdoptionService drives the request/approve/deny workflow.
type AdoptionService interface {
	Request(ctx context.Context, who domain.Identity, listingID string) (*domain.AdoptionRequest, error)
	ListPending(ctx context.Context, who domain.Identity) ([]*domain.AdoptionRequest, error)
	ListForRequester(ctx context.Context, who domain.Identity) ([]*domain.AdoptionRequest, error)
	Approve(ctx context.Context, who domain.Identity, id string) error
	Deny(ctx context.Context, who domain.Identity, id string) error
}

// AccessGate checks the shared staff secret.
type AccessGate interface {
	Check(secret string) bool
}

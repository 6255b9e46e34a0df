package ports

import (
	"context"

	"github.com/pawprint/adoption-site/internal/core/domain"
)

// ListingRepository defines persistence operations for listings.
type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) error
	// FindByID returns the listing including its image bytes.
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	// List returns every listing in insertion order, without image bytes.
	List(ctx context.Context) ([]*domain.Listing, error)
	// Delete removes the listing. domain.ErrListingNotFound when already gone.
	Delete(ctx context.Context, id string) error
	// Restore re-inserts a previously deleted listing under its original ID.
	Restore(ctx context.Context, l *domain.Listing) error
}

// AnimalRepository tracks the animal behind each listing.
type AnimalRepository interface {
	Create(ctx context.Context, a *domain.Animal) error
	FindByListing(ctx context.Context, listingID string) (*domain.Animal, error)
	// SetStatus conditionally moves the animal from one status to another.
	// domain.ErrConflict when the animal is not in status from.
	SetStatus(ctx context.Context, listingID string, from, to domain.AnimalStatus, adoptor string) error
}

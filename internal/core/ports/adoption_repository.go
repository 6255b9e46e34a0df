package ports

import (
	"context"

	"github.com/pawprint/adoption-site/internal/core/domain"
)

// AdoptionRepository persists adoption requests.
type AdoptionRepository interface {
	Create(ctx context.Context, r *domain.AdoptionRequest) error
	FindByID(ctx context.Context, id string) (*domain.AdoptionRequest, error)
	ListByStatus(ctx context.Context, status domain.AdoptionStatus) ([]*domain.AdoptionRequest, error)
	ListByRequester(ctx context.Context, requester string) ([]*domain.AdoptionRequest, error)

	// Transition sets status to `to` only while the request is still in
	// `from`. It returns domain.ErrAdoptionNotFound when the request does not
	// exist and domain.ErrConflict when it exists in another status.
	Transition(ctx context.Context, id string, from, to domain.AdoptionStatus) error

	// TransitionByListing moves every request of the listing that is in
	// `from` to `to` and reports how many were changed.
	TransitionByListing(ctx context.Context, listingID string, from, to domain.AdoptionStatus) (int64, error)
}

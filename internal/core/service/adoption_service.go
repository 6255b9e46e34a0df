package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pawprint/adoption-site/internal/core/domain"
	"github.com/pawprint/adoption-site/internal/core/ports"
)

// AdoptionService implements the adoption request workflow.
type AdoptionService struct {
	adoptions ports.AdoptionRepository
	listings  ports.ListingRepository
	animals   ports.AnimalRepository
	locker    ports.Locker
	log       zerolog.Logger
}

func NewAdoptionService(
	adoptions ports.AdoptionRepository,
	listings ports.ListingRepository,
	animals ports.AnimalRepository,
	locker ports.Locker,
	log zerolog.Logger,
) *AdoptionService {
	return &AdoptionService{
		adoptions: adoptions,
		listings:  listings,
		animals:   animals,
		locker:    locker,
		log:       log,
	}
}

// Request files an adoption request for listingID on behalf of a client.
// The listing lock covers the lookup and the insert, so a removal either
// closes the new request or runs first and the request is refused.
func (s *AdoptionService) Request(ctx context.Context, who domain.Identity, listingID string) (*domain.AdoptionRequest, error) {
	if err := domain.RequireRole(who, domain.RoleClient); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, listingLockKey(listingID))
	if err != nil {
		return nil, fmt.Errorf("request adoption: %w", err)
	}
	defer unlock()

	ctx, cancel := context.WithTimeout(ctx, sagaTimeout)
	defer cancel()

	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("request adoption: %w", err)
	}

	now := time.Now().UTC()
	req := &domain.AdoptionRequest{
		ListingID:   listing.ID,
		ListingName: listing.Name,
		Requester:   who.Handle,
		Status:      domain.AdoptionRequested,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.adoptions.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("request adoption: %w", err)
	}

	s.log.Info().Str("adoption_id", req.ID).Str("listing_id", listing.ID).Str("requester", who.Handle).Msg("adoption requested")
	return req, nil
}

// ListPending returns every request still awaiting a staff decision.
func (s *AdoptionService) ListPending(ctx context.Context, who domain.Identity) ([]*domain.AdoptionRequest, error) {
	if err := domain.RequireRole(who, domain.RoleStaff); err != nil {
		return nil, err
	}
	return s.adoptions.ListByStatus(ctx, domain.AdoptionRequested)
}

// ListForRequester returns the caller's own requests in every status.
func (s *AdoptionService) ListForRequester(ctx context.Context, who domain.Identity) ([]*domain.AdoptionRequest, error) {
	if err := domain.RequireRole(who); err != nil {
		return nil, err
	}
	return s.adoptions.ListByRequester(ctx, who.Handle)
}

// Approve runs the approval saga:
//
//  1. request requested → approved (conditional on still being requested)
//  2. delete the listing
//  3. animal available → adopted, adoptor = requester
//  4. every other pending request for the listing → listing removed
//
// Preconditions for every step are checked under the listing lock before
// step 1. A failing later step compensates the earlier ones, so the request
// is never left approved while its listing still exists.
func (s *AdoptionService) Approve(ctx context.Context, who domain.Identity, id string) error {
	if err := domain.RequireRole(who, domain.RoleStaff); err != nil {
		return err
	}

	req, err := s.adoptions.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("approve adoption: %w", err)
	}
	if !req.Status.CanTransitionTo(domain.AdoptionApproved) {
		return fmt.Errorf("approve adoption: %w (request is %s)", domain.ErrConflict, req.Status)
	}

	unlock, err := s.locker.Lock(ctx, listingLockKey(req.ListingID))
	if err != nil {
		return fmt.Errorf("approve adoption: %w", err)
	}
	defer unlock()

	ctx, cancel := context.WithTimeout(ctx, sagaTimeout)
	defer cancel()

	listing, err := s.listings.FindByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return fmt.Errorf("approve adoption: %w (listing no longer exists)", domain.ErrConflict)
		}
		return fmt.Errorf("approve adoption: %w", err)
	}

	if err := s.adoptions.Transition(ctx, id, domain.AdoptionRequested, domain.AdoptionApproved); err != nil {
		return fmt.Errorf("approve adoption: %w", err)
	}

	if err := s.listings.Delete(ctx, listing.ID); err != nil {
		compensate(ctx, s.revertApproval(id))
		if errors.Is(err, domain.ErrListingNotFound) {
			return fmt.Errorf("approve adoption: %w (listing removed concurrently)", domain.ErrConflict)
		}
		return fmt.Errorf("approve adoption: delete listing: %w", err)
	}

	if err := s.animals.SetStatus(ctx, listing.ID, domain.AnimalAvailable, domain.AnimalAdopted, req.Requester); err != nil {
		compensate(ctx, s.restoreListing(listing), s.revertApproval(id))
		return fmt.Errorf("approve adoption: update animal: %w", err)
	}

	closed, err := s.adoptions.TransitionByListing(ctx, listing.ID, domain.AdoptionRequested, domain.AdoptionListingRemoved)
	if err != nil {
		compensate(ctx, s.revertAdoption(listing.ID), s.restoreListing(listing), s.revertApproval(id))
		return fmt.Errorf("approve adoption: close other requests: %w", err)
	}

	s.log.Info().
		Str("adoption_id", id).
		Str("listing_id", listing.ID).
		Str("adoptor", req.Requester).
		Int64("requests_closed", closed).
		Str("by", who.Handle).
		Msg("adoption approved")
	return nil
}

func (s *AdoptionService) revertApproval(id string) func(context.Context) {
	return func(ctx context.Context) {
		if err := s.adoptions.Transition(ctx, id, domain.AdoptionApproved, domain.AdoptionRequested); err != nil {
			s.log.Error().Err(err).Str("adoption_id", id).Msg("compensation failed: approval not reverted")
			return
		}
		s.log.Warn().Str("adoption_id", id).Msg("approval reverted")
	}
}

func (s *AdoptionService) restoreListing(listing *domain.Listing) func(context.Context) {
	return func(ctx context.Context) {
		if err := s.listings.Restore(ctx, listing); err != nil {
			s.log.Error().Err(err).Str("listing_id", listing.ID).Msg("compensation failed: listing not restored")
		}
	}
}

func (s *AdoptionService) revertAdoption(listingID string) func(context.Context) {
	return func(ctx context.Context) {
		if err := s.animals.SetStatus(ctx, listingID, domain.AnimalAdopted, domain.AnimalAvailable, ""); err != nil {
			s.log.Error().Err(err).Str("listing_id", listingID).Msg("compensation failed: animal still adopted")
		}
	}
}

// Deny closes a pending request without touching the listing.
func (s *AdoptionService) Deny(ctx context.Context, who domain.Identity, id string) error {
	if err := domain.RequireRole(who, domain.RoleStaff); err != nil {
		return err
	}
	if err := s.adoptions.Transition(ctx, id, domain.AdoptionRequested, domain.AdoptionDenied); err != nil {
		return fmt.Errorf("deny adoption: %w", err)
	}
	s.log.Info().Str("adoption_id", id).Str("by", who.Handle).Msg("adoption denied")
	return nil
}

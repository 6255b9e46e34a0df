package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/pawprint/adoption-site/internal/core/domain"
	"github.com/pawprint/adoption-site/internal/core/ports"
)

const defaultMaxImageBytes = 5 << 20

// Work done under a listing lock is bounded by sagaTimeout for the forward
// steps and compensationTimeout for undoing them. The lock TTL must exceed
// MaxLockHold or the lock can expire mid-saga.
const (
	sagaTimeout         = 30 * time.Second
	compensationTimeout = 10 * time.Second

	MaxLockHold = sagaTimeout + compensationTimeout
)

// ListingService implements listing creation, browsing and removal.
type ListingService struct {
	listings  ports.ListingRepository
	animals   ports.AnimalRepository
	adoptions ports.AdoptionRepository
	locker    ports.Locker
	maxImage  int
	log       zerolog.Logger
}

func NewListingService(
	listings ports.ListingRepository,
	animals ports.AnimalRepository,
	adoptions ports.AdoptionRepository,
	locker ports.Locker,
	maxImageBytes int,
	log zerolog.Logger,
) *ListingService {
	if maxImageBytes <= 0 {
		maxImageBytes = defaultMaxImageBytes
	}
	return &ListingService{
		listings:  listings,
		animals:   animals,
		adoptions: adoptions,
		locker:    locker,
		maxImage:  maxImageBytes,
		log:       log,
	}
}

// Create persists a new available listing and its companion animal record.
func (s *ListingService) Create(ctx context.Context, who domain.Identity, in ports.CreateListingInput) (*domain.Listing, error) {
	if err := domain.RequireRole(who, domain.RoleStaff); err != nil {
		return nil, err
	}
	name, description := strings.TrimSpace(in.Name), strings.TrimSpace(in.Description)
	if name == "" || description == "" {
		return nil, domain.ErrMissingFields
	}

	now := time.Now().UTC()
	listing := &domain.Listing{
		Name:         name,
		Description:  description,
		BirthDate:    in.BirthDate,
		Availability: domain.AvailabilityAvailable,
		CreatedAt:    now,
	}
	if len(in.Image) > 0 {
		img, err := s.sniffImage(in.Image)
		if err != nil {
			return nil, err
		}
		listing.Image = img
		listing.HasImage = true
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}

	animal := &domain.Animal{
		ListingID: listing.ID,
		Name:      listing.Name,
		Status:    domain.AnimalAvailable,
		UpdatedAt: now,
	}
	if err := s.animals.Create(ctx, animal); err != nil {
		if delErr := s.listings.Delete(ctx, listing.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("listing_id", listing.ID).Msg("failed to roll back listing after animal insert failure")
		}
		return nil, fmt.Errorf("create animal record: %w", err)
	}

	s.log.Info().Str("listing_id", listing.ID).Str("name", listing.Name).Str("by", who.Handle).Msg("listing created")
	return listing, nil
}

func (s *ListingService) sniffImage(data []byte) (*domain.Image, error) {
	if len(data) > s.maxImage {
		return nil, fmt.Errorf("%w: larger than %d bytes", domain.ErrUnsupportedImage, s.maxImage)
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedImage, mt.String())
	}
	return &domain.Image{Data: data, ContentType: mt.String()}, nil
}

// List returns all listings to any signed-in caller.
func (s *ListingService) List(ctx context.Context, who domain.Identity) ([]*domain.Listing, error) {
	if err := domain.RequireRole(who); err != nil {
		return nil, err
	}
	return s.listings.List(ctx)
}

// Image returns the picture attached to a listing.
func (s *ListingService) Image(ctx context.Context, who domain.Identity, id string) (*domain.Image, error) {
	if err := domain.RequireRole(who); err != nil {
		return nil, err
	}
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.Image == nil {
		return nil, domain.ErrListingNotFound
	}
	return listing.Image, nil
}

// Remove deletes a listing and moves its pending adoption requests to
// "listing removed". If the cascade fails the listing is put back.
func (s *ListingService) Remove(ctx context.Context, who domain.Identity, id string) error {
	if err := domain.RequireRole(who, domain.RoleStaff); err != nil {
		return err
	}

	unlock, err := s.locker.Lock(ctx, listingLockKey(id))
	if err != nil {
		return fmt.Errorf("remove listing: %w", err)
	}
	defer unlock()

	ctx, cancel := context.WithTimeout(ctx, sagaTimeout)
	defer cancel()

	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("remove listing: %w", err)
	}
	if err := s.listings.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove listing: %w", err)
	}

	n, err := s.adoptions.TransitionByListing(ctx, id, domain.AdoptionRequested, domain.AdoptionListingRemoved)
	if err != nil {
		compensate(ctx, func(ctx context.Context) { s.restore(ctx, listing) })
		return fmt.Errorf("remove listing: cascade adoptions: %w", err)
	}

	if err := s.animals.SetStatus(ctx, id, domain.AnimalAvailable, domain.AnimalRemoved, ""); err != nil {
		// The listing is gone and its requests are closed; a stale animal
		// record is logged rather than undoing both.
		s.log.Warn().Err(err).Str("listing_id", id).Msg("failed to mark animal removed")
	}

	s.log.Info().Str("listing_id", id).Int64("requests_closed", n).Str("by", who.Handle).Msg("listing removed")
	return nil
}

func (s *ListingService) restore(ctx context.Context, listing *domain.Listing) {
	if err := s.listings.Restore(ctx, listing); err != nil {
		s.log.Error().Err(err).Str("listing_id", listing.ID).Msg("failed to restore listing")
	}
}

// CheckLockTTL rejects a lock TTL that could expire while a saga still
// holds the lock.
func CheckLockTTL(ttl time.Duration) error {
	if ttl <= MaxLockHold {
		return fmt.Errorf("lock ttl %s must be longer than %s", ttl, MaxLockHold)
	}
	return nil
}

func listingLockKey(id string) string {
	return "listing:" + id
}

// compensate runs undo steps in order on a context that survives the
// cancellation or expiry of the saga's own context.
func compensate(ctx context.Context, steps ...func(context.Context)) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()
	for _, step := range steps {
		step(ctx)
	}
}

package domain

import "time"

// Availability is the lifecycle state of a listing.
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
)

// Image is an optional picture attached to a listing.
type Image struct {
	Data        []byte
	ContentType string
}

// Listing is an adoptable animal's public record.
type Listing struct {
	ID           string
	Name         string
	Description  string
	BirthDate    *time.Time
	Availability Availability
	Image        *Image // nil when the listing has no picture or it was not loaded
	HasImage     bool
	CreatedAt    time.Time
}

// AnimalStatus tracks what happened to the animal behind a listing.
type AnimalStatus string

const (
	AnimalAvailable AnimalStatus = "available"
	AnimalAdopted   AnimalStatus = "adopted"
	AnimalRemoved   AnimalStatus = "removed"
)

// Animal is the tracking record created alongside a listing. It outlives the
// listing so adoptions remain traceable after the listing is deleted.
type Animal struct {
	ID        string
	ListingID string
	Name      string
	Status    AnimalStatus
	Adoptor   string
	UpdatedAt time.Time
}

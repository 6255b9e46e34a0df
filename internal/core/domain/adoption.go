package domain

import "time"

// AdoptionStatus represents the lifecycle state of an adoption request.
type AdoptionStatus string

const (
	AdoptionRequested      AdoptionStatus = "requested"
	AdoptionApproved       AdoptionStatus = "approved"
	AdoptionDenied         AdoptionStatus = "denied"
	AdoptionListingRemoved AdoptionStatus = "listing_removed"
)

// validTransitions defines the allowed state machine transitions. Terminal
// states have no entry.
var validTransitions = map[AdoptionStatus][]AdoptionStatus{
	AdoptionRequested: {AdoptionApproved, AdoptionDenied, AdoptionListingRemoved},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s AdoptionStatus) CanTransitionTo(next AdoptionStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s AdoptionStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// Label is the human readable status shown in views.
func (s AdoptionStatus) Label() string {
	switch s {
	case AdoptionRequested:
		return "Requested"
	case AdoptionApproved:
		return "Approved"
	case AdoptionDenied:
		return "Denied"
	case AdoptionListingRemoved:
		return "Listing removed"
	default:
		return string(s)
	}
}

// AdoptionRequest is a client's claim on a listing.
type AdoptionRequest struct {
	ID          string
	ListingID   string
	ListingName string
	Requester   string
	Status      AdoptionStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

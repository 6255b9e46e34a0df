package domain

import "errors"

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrDuplicateHandle    = errors.New("handle already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrListingNotFound    = errors.New("listing not found")
	ErrAdoptionNotFound   = errors.New("adoption request not found")
	ErrAnimalNotFound     = errors.New("animal not found")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrConflict           = errors.New("conflicting state change")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrUnsupportedImage   = errors.New("unsupported image")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSession            = errors.New("session store failure")
	ErrStorage            = errors.New("storage failure")
)

// IsNotFound reports whether err is one of the entity not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrListingNotFound) ||
		errors.Is(err, ErrAdoptionNotFound) ||
		errors.Is(err, ErrAnimalNotFound)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pawprint/adoption-site/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	byHandle map[string]*domain.Account
	seq      int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byHandle: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	if _, exists := r.byHandle[a.Handle]; exists {
		return nil, domain.ErrDuplicateHandle
	}
	r.seq++
	stored := cloneAccount(a)
	stored.ID = fmt.Sprintf("acc-%d", r.seq)
	r.byHandle[stored.Handle] = stored
	return cloneAccount(stored), nil
}

func (r *stubAccountRepo) FindByHandle(_ context.Context, handle string) (*domain.Account, error) {
	a, ok := r.byHandle[handle]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) UpdateProfile(_ context.Context, handle, newName, newHandle string) (*domain.Account, error) {
	a, ok := r.byHandle[handle]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if other, taken := r.byHandle[newHandle]; taken && other.ID != a.ID {
		return nil, domain.ErrDuplicateHandle
	}
	delete(r.byHandle, handle)
	a.Name, a.Handle = newName, newHandle
	r.byHandle[newHandle] = a
	return cloneAccount(a), nil
}

type stubGate struct{ secret string }

func (g stubGate) Check(s string) bool { return s != "" && s == g.secret }

// ---------------------------------------------------------------------------
// Listings and animals
// ---------------------------------------------------------------------------

type stubListingRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Listing
	order     []string
	seq       int
	deleteErr error

	// onFind and onDelete run before the repository does its work; used to
	// simulate races and inspect the caller's context.
	onFind   func(id string)
	onDelete func(ctx context.Context, id string)
}

func newStubListingRepo() *stubListingRepo {
	return &stubListingRepo{byID: make(map[string]*domain.Listing)}
}

func (r *stubListingRepo) Create(_ context.Context, l *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	l.ID = fmt.Sprintf("lst-%d", r.seq)
	clone := *l
	r.byID[l.ID] = &clone
	r.order = append(r.order, l.ID)
	return nil
}

func (r *stubListingRepo) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	if r.onFind != nil {
		r.onFind(id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *stubListingRepo) List(_ context.Context) ([]*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Listing, 0, len(r.byID))
	for _, id := range r.order {
		if l, ok := r.byID[id]; ok {
			clone := *l
			clone.Image = nil
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubListingRepo) Delete(ctx context.Context, id string) error {
	if r.onDelete != nil {
		r.onDelete(ctx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubListingRepo) Restore(ctx context.Context, l *domain.Listing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *l
	r.byID[l.ID] = &clone
	return nil
}

type stubAnimalRepo struct {
	mu        sync.Mutex
	byListing map[string]*domain.Animal
	createErr error
	setErr    error
}

func newStubAnimalRepo() *stubAnimalRepo {
	return &stubAnimalRepo{byListing: make(map[string]*domain.Animal)}
}

func (r *stubAnimalRepo) Create(_ context.Context, a *domain.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	a.ID = "ani-" + a.ListingID
	clone := *a
	r.byListing[a.ListingID] = &clone
	return nil
}

func (r *stubAnimalRepo) FindByListing(_ context.Context, listingID string) (*domain.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byListing[listingID]
	if !ok {
		return nil, domain.ErrAnimalNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAnimalRepo) SetStatus(ctx context.Context, listingID string, from, to domain.AnimalStatus, adoptor string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setErr != nil {
		return r.setErr
	}
	a, ok := r.byListing[listingID]
	if !ok {
		return domain.ErrAnimalNotFound
	}
	if a.Status != from {
		return domain.ErrConflict
	}
	a.Status, a.Adoptor, a.UpdatedAt = to, adoptor, time.Now()
	return nil
}

// ---------------------------------------------------------------------------
// Adoptions
// ---------------------------------------------------------------------------

type stubAdoptionRepo struct {
	mu            sync.Mutex
	byID          map[string]*domain.AdoptionRequest
	order         []string
	seq           int
	cascadeErr    error
	transitionErr error
}

func newStubAdoptionRepo() *stubAdoptionRepo {
	return &stubAdoptionRepo{byID: make(map[string]*domain.AdoptionRequest)}
}

func (r *stubAdoptionRepo) Create(_ context.Context, a *domain.AdoptionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	a.ID = fmt.Sprintf("adp-%d", r.seq)
	clone := *a
	r.byID[a.ID] = &clone
	r.order = append(r.order, a.ID)
	return nil
}

func (r *stubAdoptionRepo) FindByID(_ context.Context, id string) (*domain.AdoptionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAdoptionNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAdoptionRepo) filter(keep func(*domain.AdoptionRequest) bool) []*domain.AdoptionRequest {
	var out []*domain.AdoptionRequest
	for _, id := range r.order {
		if a := r.byID[id]; keep(a) {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out
}

func (r *stubAdoptionRepo) ListByStatus(_ context.Context, status domain.AdoptionStatus) ([]*domain.AdoptionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(a *domain.AdoptionRequest) bool { return a.Status == status }), nil
}

func (r *stubAdoptionRepo) ListByRequester(_ context.Context, requester string) ([]*domain.AdoptionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(a *domain.AdoptionRequest) bool { return a.Requester == requester }), nil
}

func (r *stubAdoptionRepo) Transition(ctx context.Context, id string, from, to domain.AdoptionStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.transitionErr != nil {
		return r.transitionErr
	}
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAdoptionNotFound
	}
	if a.Status != from {
		return domain.ErrConflict
	}
	a.Status = to
	return nil
}

func (r *stubAdoptionRepo) TransitionByListing(_ context.Context, listingID string, from, to domain.AdoptionStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cascadeErr != nil {
		return 0, r.cascadeErr
	}
	var n int64
	for _, a := range r.byID {
		if a.ListingID == listingID && a.Status == from {
			a.Status = to
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Locks and sessions
// ---------------------------------------------------------------------------

type stubLocker struct {
	mu   sync.Mutex
	held map[string]bool
	keys []string
}

func newStubLocker() *stubLocker {
	return &stubLocker{held: make(map[string]bool)}
}

func (l *stubLocker) Lock(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, domain.ErrConflict
	}
	l.held[key] = true
	l.keys = append(l.keys, key)
	return func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}, nil
}

type stubSessionStore struct {
	sessions map[string]domain.Identity
	err      error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Identity)}
}

func (s *stubSessionStore) Save(_ context.Context, id string, who domain.Identity, _ time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.sessions[id] = who
	return nil
}

func (s *stubSessionStore) Load(_ context.Context, id string, _ time.Duration) (domain.Identity, error) {
	if s.err != nil {
		return domain.Anonymous, s.err
	}
	who, ok := s.sessions[id]
	if !ok {
		return domain.Anonymous, domain.ErrSessionNotFound
	}
	return who, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.sessions, id)
	return nil
}

var errBoom = errors.New("boom")

var (
	staff  = domain.Identity{Handle: "sam", Name: "Sam", Role: domain.RoleStaff}
	client = domain.Identity{Handle: "alice", Name: "Alice", Role: domain.RoleClient}
)

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawprint/adoption-site/internal/core/domain"
	"github.com/pawprint/adoption-site/internal/core/ports"
)

// Register → login → staff lists Rex → Alice requests → staff approves →
// Alice sees one approved request and Rex is gone from the listings.
func TestScenario_RegisterAdoptApprove(t *testing.T) {
	ctx := context.Background()
	accounts := NewAccountService(newStubAccountRepo(), NewSecretGate("gate"), bcrypt.MinCost, zerolog.Nop())
	sessions := NewSessionService(newStubSessionStore(), "secret", time.Hour, zerolog.Nop())
	f := newAdoptionFixture()

	alice, err := accounts.Register(ctx, "Alice", "alice", "pw1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := accounts.Authenticate(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := accounts.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	token, err := sessions.Establish(ctx, alice)
	if err != nil {
		t.Fatalf("establish: %v", err)
	}
	aliceID := sessions.Identify(ctx, token)

	sam, err := accounts.RegisterStaff(ctx, "gate", "Sam", "sam", "pw")
	if err != nil {
		t.Fatalf("register staff: %v", err)
	}
	samID := sam.Identity()

	rex, err := f.svc.Create(ctx, samID, ports.CreateListingInput{Name: "Rex", Description: "Good dog"})
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	req, err := f.adoptionSvc.Request(ctx, aliceID, rex.ID)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if err := f.adoptionSvc.Approve(ctx, samID, req.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	mine, err := f.adoptionSvc.ListForRequester(ctx, aliceID)
	if err != nil {
		t.Fatalf("adoptions: %v", err)
	}
	if len(mine) != 1 || mine[0].Status != domain.AdoptionApproved || mine[0].ListingName != "Rex" {
		t.Fatalf("unexpected adoptions view: %+v", mine)
	}

	listings, err := f.svc.List(ctx, aliceID)
	if err != nil {
		t.Fatalf("listings: %v", err)
	}
	for _, l := range listings {
		if l.ID == rex.ID {
			t.Fatalf("Rex must no longer be listed")
		}
	}
}

package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pawprint/adoption-site/internal/core/domain"
)

func newStaffHandler(sessions *stubSessionService) *StaffHandler {
	accounts := &stubAccountService{
		registerStaffFn: func(_ context.Context, secret, name, handle, password string) (*domain.Account, error) {
			if secret != "open-sesame" {
				return nil, domain.ErrForbidden
			}
			if handle == "taken" {
				return nil, domain.ErrDuplicateHandle
			}
			return &domain.Account{Name: name, Handle: handle, Role: domain.RoleStaff}, nil
		},
	}
	return NewStaffHandler(stubGate{secret: "open-sesame"}, accounts, sessions, cookie, zerolog.Nop())
}

func TestStaffHandler_AddStaff_SecretUnlocksForm(t *testing.T) {
	h := newStaffHandler(&stubSessionService{})

	c, rec, rr := newFormContext("/addstaff", url.Values{"secret": {"open-sesame"}}, domain.Anonymous)
	if err := h.AddStaff(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || rr.view != "staff_register" {
		t.Fatalf("expected staff registration form, got %d %q", rec.Code, rr.view)
	}
	if rr.data["Secret"] != "open-sesame" {
		t.Fatalf("secret must be carried to the next step")
	}
}

func TestStaffHandler_AddStaff_WrongSecretRedisplaysGate(t *testing.T) {
	sessions := &stubSessionService{}
	h := newStaffHandler(sessions)

	for _, form := range []url.Values{
		{"secret": {"guess"}},
		{"secret": {"guess"}, "name": {"Eve"}, "handle": {"eve"}, "password": {"pw"}},
		{},
	} {
		c, rec, rr := newFormContext("/addstaff", form, domain.Anonymous)
		if err := h.AddStaff(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK || rr.view != "staff_gate" {
			t.Fatalf("%v: expected gate redisplayed, got %d %q", form, rec.Code, rr.view)
		}
		if rr.data["Error"] != nil {
			t.Fatalf("gate must fail silently, got %v", rr.data["Error"])
		}
	}
	if len(sessions.established) != 0 {
		t.Fatalf("no session expected, got %v", sessions.established)
	}
}

func TestStaffHandler_AddStaff_CreatesStaffAndSignsIn(t *testing.T) {
	sessions := &stubSessionService{}
	h := newStaffHandler(sessions)

	form := url.Values{"secret": {"open-sesame"}, "name": {"Sam"}, "handle": {"sam"}, "password": {"pw"}}
	c, rec, _ := newFormContext("/addstaff", form, domain.Anonymous)
	if err := h.AddStaff(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/listings" {
		t.Fatalf("expected redirect to /listings, got %d", rec.Code)
	}
	if len(sessions.established) != 1 || sessions.established[0] != "sam" {
		t.Fatalf("expected staff session, got %v", sessions.established)
	}
}

func TestStaffHandler_AddStaff_DuplicateHandle(t *testing.T) {
	h := newStaffHandler(&stubSessionService{})

	form := url.Values{"secret": {"open-sesame"}, "name": {"Sam"}, "handle": {"taken"}, "password": {"pw"}}
	c, rec, rr := newFormContext("/addstaff", form, domain.Anonymous)
	_ = h.AddStaff(c)
	if rec.Code != http.StatusConflict || rr.view != "staff_register" {
		t.Fatalf("expected registration form with 409, got %d %q", rec.Code, rr.view)
	}
}

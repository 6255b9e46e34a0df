package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/pawprint/adoption-site/internal/api/handler"
	"github.com/pawprint/adoption-site/internal/core/domain"
	"github.com/pawprint/adoption-site/internal/web"
)

type stubSessions struct {
	byToken map[string]domain.Identity
}

func (s *stubSessions) Establish(context.Context, *domain.Account) (string, error) { return "", nil }

func (s *stubSessions) Identify(_ context.Context, token string) domain.Identity {
	if who, ok := s.byToken[token]; ok {
		return who
	}
	return domain.Anonymous
}

func (s *stubSessions) Refresh(context.Context, string, *domain.Account) error { return nil }

func (s *stubSessions) Destroy(context.Context, string) error { return nil }

type stubAdoptions struct {
	pendingCalls int
}

func (s *stubAdoptions) Request(context.Context, domain.Identity, string) (*domain.AdoptionRequest, error) {
	return nil, nil
}

func (s *stubAdoptions) ListPending(_ context.Context, who domain.Identity) ([]*domain.AdoptionRequest, error) {
	s.pendingCalls++
	if err := domain.RequireRole(who, domain.RoleStaff); err != nil {
		return nil, err
	}
	return []*domain.AdoptionRequest{{ID: "r1", ListingName: "Rex", Requester: "alice", Status: domain.AdoptionRequested}}, nil
}

func (s *stubAdoptions) ListForRequester(context.Context, domain.Identity) ([]*domain.AdoptionRequest, error) {
	return nil, nil
}

func (s *stubAdoptions) Approve(context.Context, domain.Identity, string) error { return nil }

func (s *stubAdoptions) Deny(context.Context, domain.Identity, string) error { return nil }

func newTestRouter(t *testing.T, adoptions *stubAdoptions) *echo.Echo {
	t.Helper()
	return NewRouter(testDeps(t, adoptions))
}

func testDeps(t *testing.T, adoptions *stubAdoptions) Deps {
	t.Helper()

	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	reg := prometheus.NewRegistry()
	return Deps{
		Sessions: &stubSessions{byToken: map[string]domain.Identity{
			"staff-token":  {Handle: "sam", Name: "Sam", Role: domain.RoleStaff},
			"client-token": {Handle: "alice", Name: "Alice", Role: domain.RoleClient},
		}},
		Adoptions:  adoptions,
		Renderer:   renderer,
		Cookie:     handler.SessionCookie{Name: "sid"},
		Registerer: reg,
		Gatherer:   reg,
		Log:        zerolog.Nop(),
	}
}

func get(e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: token})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RequestsRedirectsAnonymousToLanding(t *testing.T) {
	adoptions := &stubAdoptions{}
	e := newTestRouter(t, adoptions)

	rec := get(e, "/requests", "")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	if strings.Contains(rec.Body.String(), "Rex") || adoptions.pendingCalls != 0 {
		t.Fatalf("pending requests must not be rendered")
	}
}

func TestRouter_RequestsRedirectsClientToLanding(t *testing.T) {
	adoptions := &stubAdoptions{}
	e := newTestRouter(t, adoptions)

	rec := get(e, "/requests", "client-token")

	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("expected redirect to /, got %d", rec.Code)
	}
	if adoptions.pendingCalls != 0 {
		t.Fatalf("service must not be reached")
	}
}

func TestRouter_RequestsRendersForStaff(t *testing.T) {
	e := newTestRouter(t, &stubAdoptions{})

	rec := get(e, "/requests", "staff-token")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Rex") || !strings.Contains(body, "alice") {
		t.Fatalf("expected pending request in page, got %q", body)
	}
}

func TestRouter_Landing(t *testing.T) {
	e := newTestRouter(t, &stubAdoptions{})

	if rec := get(e, "/", ""); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `action="/login"`) {
		t.Fatalf("expected landing page, got %d", rec.Code)
	}
	if rec := get(e, "/", "client-token"); rec.Code != http.StatusSeeOther {
		t.Fatalf("expected signed-in visitor redirected, got %d", rec.Code)
	}
}

func TestRouter_Liveness(t *testing.T) {
	e := newTestRouter(t, &stubAdoptions{})

	if rec := get(e, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_AddListingRejectsOversizeBody(t *testing.T) {
	deps := testDeps(t, &stubAdoptions{})
	deps.MaxImageBytes = 1024
	e := NewRouter(deps)

	body := strings.Repeat("x", 1024+64<<10+1)
	req := httptest.NewRequest(http.MethodPost, "/addlisting", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, "multipart/form-data; boundary=xyz")
	req.AddCookie(&http.Cookie{Name: "sid", Value: "staff-token"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestUploadBodyLimit(t *testing.T) {
	if got := uploadBodyLimit(1024); got != "66560B" {
		t.Fatalf("unexpected limit %q", got)
	}
	if got := uploadBodyLimit(0); got != "5308416B" {
		t.Fatalf("unexpected default limit %q", got)
	}
}

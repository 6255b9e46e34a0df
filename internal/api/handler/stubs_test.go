package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pawprint/adoption-site/internal/api/middleware"
	"github.com/pawprint/adoption-site/internal/core/domain"
	"github.com/pawprint/adoption-site/internal/core/ports"
)

var (
	staff  = domain.Identity{Handle: "sam", Name: "Sam", Role: domain.RoleStaff}
	client = domain.Identity{Handle: "alice", Name: "Alice", Role: domain.RoleClient}
	cookie = SessionCookie{Name: "sid"}
)

// recordingRenderer captures the last view rendered instead of producing HTML.
type recordingRenderer struct {
	view string
	data echo.Map
}

func (r *recordingRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	r.view = name
	r.data, _ = data.(echo.Map)
	_, err := io.WriteString(w, name)
	return err
}

// newFormContext builds a POST context with an url-encoded body, bound to who.
func newFormContext(path string, form url.Values, who domain.Identity) (echo.Context, *httptest.ResponseRecorder, *recordingRenderer) {
	e := echo.New()
	e.Validator = NewValidator()
	rr := &recordingRenderer{}
	e.Renderer = rr

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.IdentityKey, who)
	return c, rec, rr
}

func newGetContext(path string, who domain.Identity) (echo.Context, *httptest.ResponseRecorder, *recordingRenderer) {
	e := echo.New()
	rr := &recordingRenderer{}
	e.Renderer = rr

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, path, nil), rec)
	c.Set(middleware.IdentityKey, who)
	return c, rec, rr
}

type stubAccountService struct {
	registerFn      func(ctx context.Context, name, handle, password string) (*domain.Account, error)
	registerStaffFn func(ctx context.Context, secret, name, handle, password string) (*domain.Account, error)
	authenticateFn  func(ctx context.Context, handle, password string) (*domain.Account, error)
	updateFn        func(ctx context.Context, who domain.Identity, newName, newHandle string) (*domain.Account, error)
	profileFn       func(ctx context.Context, who domain.Identity) (*domain.Account, error)
}

func (s *stubAccountService) Register(ctx context.Context, name, handle, password string) (*domain.Account, error) {
	return s.registerFn(ctx, name, handle, password)
}

func (s *stubAccountService) RegisterStaff(ctx context.Context, secret, name, handle, password string) (*domain.Account, error) {
	return s.registerStaffFn(ctx, secret, name, handle, password)
}

func (s *stubAccountService) Authenticate(ctx context.Context, handle, password string) (*domain.Account, error) {
	return s.authenticateFn(ctx, handle, password)
}

func (s *stubAccountService) UpdateProfile(ctx context.Context, who domain.Identity, newName, newHandle string) (*domain.Account, error) {
	return s.updateFn(ctx, who, newName, newHandle)
}

func (s *stubAccountService) Profile(ctx context.Context, who domain.Identity) (*domain.Account, error) {
	return s.profileFn(ctx, who)
}

type stubSessionService struct {
	established []string
	refreshed   []string
	destroyed   []string
	destroyErr  error
}

func (s *stubSessionService) Establish(_ context.Context, account *domain.Account) (string, error) {
	s.established = append(s.established, account.Handle)
	return "token-" + account.Handle, nil
}

func (s *stubSessionService) Identify(context.Context, string) domain.Identity {
	return domain.Anonymous
}

func (s *stubSessionService) Refresh(_ context.Context, token string, _ *domain.Account) error {
	s.refreshed = append(s.refreshed, token)
	return nil
}

func (s *stubSessionService) Destroy(_ context.Context, token string) error {
	s.destroyed = append(s.destroyed, token)
	return s.destroyErr
}

type stubListingService struct {
	createFn func(ctx context.Context, who domain.Identity, in ports.CreateListingInput) (*domain.Listing, error)
	listFn   func(ctx context.Context, who domain.Identity) ([]*domain.Listing, error)
	imageFn  func(ctx context.Context, who domain.Identity, id string) (*domain.Image, error)
	removeFn func(ctx context.Context, who domain.Identity, id string) error
}

func (s *stubListingService) Create(ctx context.Context, who domain.Identity, in ports.CreateListingInput) (*domain.Listing, error) {
	return s.createFn(ctx, who, in)
}

func (s *stubListingService) List(ctx context.Context, who domain.Identity) ([]*domain.Listing, error) {
	return s.listFn(ctx, who)
}

func (s *stubListingService) Image(ctx context.Context, who domain.Identity, id string) (*domain.Image, error) {
	return s.imageFn(ctx, who, id)
}

func (s *stubListingService) Remove(ctx context.Context, who domain.Identity, id string) error {
	return s.removeFn(ctx, who, id)
}

type stubAdoptionService struct {
	requestFn func(ctx context.Context, who domain.Identity, listingID string) (*domain.AdoptionRequest, error)
	pendingFn func(ctx context.Context, who domain.Identity) ([]*domain.AdoptionRequest, error)
	mineFn    func(ctx context.Context, who domain.Identity) ([]*domain.AdoptionRequest, error)
	approveFn func(ctx context.Context, who domain.Identity, id string) error
	denyFn    func(ctx context.Context, who domain.Identity, id string) error
}

func (s *stubAdoptionService) Request(ctx context.Context, who domain.Identity, listingID string) (*domain.AdoptionRequest, error) {
	return s.requestFn(ctx, who, listingID)
}

func (s *stubAdoptionService) ListPending(ctx context.Context, who domain.Identity) ([]*domain.AdoptionRequest, error) {
	return s.pendingFn(ctx, who)
}

func (s *stubAdoptionService) ListForRequester(ctx context.Context, who domain.Identity) ([]*domain.AdoptionRequest, error) {
	return s.mineFn(ctx, who)
}

func (s *stubAdoptionService) Approve(ctx context.Context, who domain.Identity, id string) error {
	return s.approveFn(ctx, who, id)
}

func (s *stubAdoptionService) Deny(ctx context.Context, who domain.Identity, id string) error {
	return s.denyFn(ctx, who, id)
}

type stubGate struct{ secret string }

func (g stubGate) Check(secret string) bool { return secret != "" && secret == g.secret }

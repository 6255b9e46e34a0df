package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pawprint/adoption-site/internal/api/metrics"
	"github.com/pawprint/adoption-site/internal/core/domain"
	"github.com/pawprint/adoption-site/internal/core/ports"
)

const (
	msgMissingFields   = "Please fill in every field."
	msgDuplicateHandle = "That username is already taken."
	msgBadLogin        = "Invalid username or password."
)

type AccountHandler struct {
	accounts ports.AccountService
	sessions ports.SessionService
	cookie   SessionCookie
	log      zerolog.Logger
}

func NewAccountHandler(accounts ports.AccountService, sessions ports.SessionService, cookie SessionCookie, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, sessions: sessions, cookie: cookie, log: log}
}

// Home renders the landing page, or sends signed-in visitors to the listings.
//
// @Summary      Landing page
// @Tags         accounts
// @Produce      html
// @Success      200
// @Success      303
// @Router       / [get]
func (h *AccountHandler) Home(c echo.Context) error {
	if ctxIdentity(c).IsAuthenticated() {
		return seeOther(c, "/listings")
	}
	return render(c, http.StatusOK, "home", nil)
}

// Register creates a client account and signs it in.
//
// @Summary      Register a client account
// @Tags         accounts
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        name      formData  string  true  "Display name"
// @Param        handle    formData  string  true  "Login handle"
// @Param        password  formData  string  true  "Password"
// @Success      303
// @Failure      400
// @Failure      409
// @Router       /register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var f registerForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&f); err != nil {
		return render(c, http.StatusBadRequest, "home", echo.Map{"Error": inlineError(err), "Name": f.Name})
	}

	account, err := h.accounts.Register(c.Request().Context(), f.Name, f.Handle, f.Password)
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return render(c, http.StatusBadRequest, "home", echo.Map{"Error": msgMissingFields, "Name": f.Name})
	case errors.Is(err, domain.ErrDuplicateHandle):
		return render(c, http.StatusConflict, "home", echo.Map{"Error": msgDuplicateHandle, "Name": f.Name})
	case err != nil:
		return err
	}

	metrics.AccountsRegisteredTotal.WithLabelValues(string(account.Role)).Inc()
	return h.signIn(c, account)
}

// Login authenticates a handle and password. Unknown handles and wrong
// passwords produce the same response.
//
// @Summary      Log in
// @Tags         accounts
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        handle    formData  string  true  "Login handle"
// @Param        password  formData  string  true  "Password"
// @Success      303
// @Failure      401
// @Router       /login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var f loginForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&f); err != nil {
		return render(c, http.StatusBadRequest, "home", echo.Map{"Error": msgMissingFields, "Handle": f.Handle})
	}

	account, err := h.accounts.Authenticate(c.Request().Context(), f.Handle, f.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return render(c, http.StatusUnauthorized, "home", echo.Map{"Error": msgBadLogin, "Handle": f.Handle})
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return h.signIn(c, account)
}

// Logout destroys the current session and clears the cookie.
//
// @Summary      Log out
// @Tags         accounts
// @Success      303
// @Router       /logout [get]
func (h *AccountHandler) Logout(c echo.Context) error {
	token := h.cookie.read(c)
	h.cookie.clear(c)
	if err := h.sessions.Destroy(c.Request().Context(), token); err != nil {
		return err
	}
	return seeOther(c, "/")
}

// ProfileForm renders the profile editor with the current values.
//
// @Summary      Profile form
// @Tags         accounts
// @Produce      html
// @Success      200
// @Router       /profile [get]
func (h *AccountHandler) ProfileForm(c echo.Context) error {
	account, err := h.accounts.Profile(c.Request().Context(), ctxIdentity(c))
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "profile", echo.Map{"Name": account.Name, "Handle": account.Handle})
}

// EditProfile renames the signed-in account and rebinds the session.
//
// @Summary      Edit profile
// @Tags         accounts
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        name    formData  string  true  "New display name"
// @Param        handle  formData  string  true  "New login handle"
// @Success      303
// @Failure      400
// @Failure      409
// @Router       /editprofile [post]
func (h *AccountHandler) EditProfile(c echo.Context) error {
	var f profileForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form := echo.Map{"Name": f.Name, "Handle": f.Handle}
	if err := c.Validate(&f); err != nil {
		form["Error"] = inlineError(err)
		return render(c, http.StatusBadRequest, "profile", form)
	}

	ctx := c.Request().Context()
	account, err := h.accounts.UpdateProfile(ctx, ctxIdentity(c), f.Name, f.Handle)
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		form["Error"] = msgMissingFields
		return render(c, http.StatusBadRequest, "profile", form)
	case errors.Is(err, domain.ErrDuplicateHandle):
		form["Error"] = msgDuplicateHandle
		return render(c, http.StatusConflict, "profile", form)
	case err != nil:
		return err
	}

	if err := h.sessions.Refresh(ctx, h.cookie.read(c), account); err != nil {
		return err
	}
	return seeOther(c, "/profile")
}

func (h *AccountHandler) signIn(c echo.Context, account *domain.Account) error {
	token, err := h.sessions.Establish(c.Request().Context(), account)
	if err != nil {
		return err
	}
	h.cookie.set(c, token)
	h.log.Debug().Str("handle", account.Handle).Msg("session established")
	return seeOther(c, "/listings")
}

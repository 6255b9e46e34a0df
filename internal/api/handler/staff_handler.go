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

// StaffHandler serves the shared-secret path to a staff account.
type StaffHandler struct {
	gate     ports.AccessGate
	accounts ports.AccountService
	sessions ports.SessionService
	cookie   SessionCookie
	log      zerolog.Logger
}

func NewStaffHandler(
	gate ports.AccessGate,
	accounts ports.AccountService,
	sessions ports.SessionService,
	cookie SessionCookie,
	log zerolog.Logger,
) *StaffHandler {
	return &StaffHandler{gate: gate, accounts: accounts, sessions: sessions, cookie: cookie, log: log}
}

// Gate renders the secret prompt.
//
// @Summary      Staff access gate
// @Tags         staff
// @Produce      html
// @Success      200
// @Router       /staff [get]
func (h *StaffHandler) Gate(c echo.Context) error {
	return render(c, http.StatusOK, "staff_gate", nil)
}

// AddStaff handles both steps of staff self-registration. A secret alone
// unlocks the registration form; a secret with account fields creates the
// staff account. A wrong secret redisplays the gate without comment.
//
// @Summary      Elevate to staff
// @Tags         staff
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        secret    formData  string  true   "Shared staff secret"
// @Param        name      formData  string  false  "Display name"
// @Param        handle    formData  string  false  "Login handle"
// @Param        password  formData  string  false  "Password"
// @Success      200
// @Success      303
// @Failure      409
// @Router       /addstaff [post]
func (h *StaffHandler) AddStaff(c echo.Context) error {
	var f staffForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if f.Secret == "" && !f.hasAccountFields() {
		return render(c, http.StatusOK, "staff_gate", nil)
	}

	if !f.hasAccountFields() {
		if !h.gate.Check(f.Secret) {
			metrics.StaffGateAttemptsTotal.WithLabelValues("rejected").Inc()
			return render(c, http.StatusOK, "staff_gate", nil)
		}
		metrics.StaffGateAttemptsTotal.WithLabelValues("accepted").Inc()
		return render(c, http.StatusOK, "staff_register", echo.Map{"Secret": f.Secret})
	}

	form := echo.Map{"Secret": f.Secret, "Name": f.Name, "Handle": f.Handle}
	account, err := h.accounts.RegisterStaff(c.Request().Context(), f.Secret, f.Name, f.Handle, f.Password)
	switch {
	case errors.Is(err, domain.ErrForbidden):
		metrics.StaffGateAttemptsTotal.WithLabelValues("rejected").Inc()
		return render(c, http.StatusOK, "staff_gate", nil)
	case errors.Is(err, domain.ErrMissingFields):
		form["Error"] = msgMissingFields
		return render(c, http.StatusBadRequest, "staff_register", form)
	case errors.Is(err, domain.ErrDuplicateHandle):
		form["Error"] = msgDuplicateHandle
		return render(c, http.StatusConflict, "staff_register", form)
	case err != nil:
		return err
	}

	metrics.AccountsRegisteredTotal.WithLabelValues(string(account.Role)).Inc()
	token, err := h.sessions.Establish(c.Request().Context(), account)
	if err != nil {
		return err
	}
	h.cookie.set(c, token)
	h.log.Info().Str("handle", account.Handle).Msg("staff account created through access gate")
	return seeOther(c, "/listings")
}

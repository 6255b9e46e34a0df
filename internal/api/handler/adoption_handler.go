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

type AdoptionHandler struct {
	adoptions ports.AdoptionService
	log       zerolog.Logger
}

func NewAdoptionHandler(adoptions ports.AdoptionService, log zerolog.Logger) *AdoptionHandler {
	return &AdoptionHandler{adoptions: adoptions, log: log}
}

// Adopt files an adoption request for a listing.
//
// @Summary      Request an adoption
// @Tags         adoptions
// @Accept       x-www-form-urlencoded
// @Param        id  formData  string  true  "Listing ID"
// @Success      303
// @Failure      404
// @Router       /adopt [post]
func (h *AdoptionHandler) Adopt(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}
	_, err = h.adoptions.Request(c.Request().Context(), ctxIdentity(c), id)
	record("request", err)
	if err != nil {
		return err
	}
	return seeOther(c, "/adoptions")
}

// Pending renders all requests awaiting a decision.
//
// @Summary      Pending requests
// @Tags         adoptions
// @Produce      html
// @Success      200
// @Router       /requests [get]
func (h *AdoptionHandler) Pending(c echo.Context) error {
	requests, err := h.adoptions.ListPending(c.Request().Context(), ctxIdentity(c))
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "requests", echo.Map{"Requests": requests})
}

// Approve accepts a request, removing the listing and marking the animal adopted.
//
// @Summary      Approve a request
// @Tags         adoptions
// @Accept       x-www-form-urlencoded
// @Param        id  formData  string  true  "Adoption request ID"
// @Success      303
// @Failure      404
// @Failure      409
// @Router       /approve [post]
func (h *AdoptionHandler) Approve(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}
	err = h.adoptions.Approve(c.Request().Context(), ctxIdentity(c), id)
	record("approve", err)
	if err != nil {
		return err
	}
	return seeOther(c, "/requests")
}

// Deny rejects a request.
//
// @Summary      Deny a request
// @Tags         adoptions
// @Accept       x-www-form-urlencoded
// @Param        id  formData  string  true  "Adoption request ID"
// @Success      303
// @Failure      404
// @Failure      409
// @Router       /deny [post]
func (h *AdoptionHandler) Deny(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}
	err = h.adoptions.Deny(c.Request().Context(), ctxIdentity(c), id)
	record("deny", err)
	if err != nil {
		return err
	}
	return seeOther(c, "/requests")
}

// Mine renders the caller's own requests.
//
// @Summary      My adoption requests
// @Tags         adoptions
// @Produce      html
// @Success      200
// @Router       /adoptions [get]
func (h *AdoptionHandler) Mine(c echo.Context) error {
	requests, err := h.adoptions.ListForRequester(c.Request().Context(), ctxIdentity(c))
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "adoptions", echo.Map{"Requests": requests})
}

func bindID(c echo.Context) (string, error) {
	var f idForm
	if err := c.Bind(&f); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&f); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return f.ID, nil
}

// record counts a workflow operation by outcome. Authorization failures are
// not counted.
func record(action string, err error) {
	var result string
	switch {
	case err == nil:
		result = "ok"
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInvalidTransition):
		result = "conflict"
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrForbidden):
		return
	default:
		result = "error"
	}
	metrics.AdoptionOperationsTotal.WithLabelValues(action, result).Inc()
}

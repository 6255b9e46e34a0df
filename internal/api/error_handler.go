package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pawprint/adoption-site/internal/api/middleware"
	"github.com/pawprint/adoption-site/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Redirects authorization failures to the landing page.
//   - Maps known domain errors to an error page with the matching status.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrUnauthenticated) || errors.Is(err, domain.ErrForbidden) {
			_ = c.Redirect(http.StatusSeeOther, "/")
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		data := echo.Map{"Title": msg, "Me": middleware.IdentityFrom(c)}
		if rerr := c.Render(code, "error", data); rerr != nil {
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "Someone else changed this record first. Reload and try again."
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, "That listing no longer exists."
	case errors.Is(err, domain.ErrAdoptionNotFound):
		return http.StatusNotFound, "That adoption request does not exist."
	case domain.IsNotFound(err):
		return http.StatusNotFound, "Not found."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Something went wrong. Please try again later."
}

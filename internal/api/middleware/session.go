package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/pawprint/adoption-site/internal/core/domain"
	"github.com/pawprint/adoption-site/internal/core/ports"
)

// IdentityKey is the echo.Context key holding the caller's domain.Identity.
const IdentityKey = "identity"

// Session resolves the session cookie to an identity and binds it to the
// request. Missing, forged and expired cookies all bind domain.Anonymous.
func Session(sessions ports.SessionService, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			who := domain.Anonymous
			if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
				who = sessions.Identify(c.Request().Context(), ck.Value)
			}
			c.Set(IdentityKey, who)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity bound by Session, or domain.Anonymous.
func IdentityFrom(c echo.Context) domain.Identity {
	who, ok := c.Get(IdentityKey).(domain.Identity)
	if !ok {
		return domain.Anonymous
	}
	return who
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawprint/adoption-site/internal/core/domain"
)

// RequireRole admits callers holding one of roles. Everyone else is sent to
// the landing page without an explicit denial.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := domain.RequireRole(IdentityFrom(c), roles...); err != nil {
				return c.Redirect(http.StatusSeeOther, "/")
			}
			return next(c)
		}
	}
}

// RequireAuth admits any signed-in caller.
func RequireAuth() echo.MiddlewareFunc {
	return RequireRole()
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawprint/adoption-site/internal/api/middleware"
	"github.com/pawprint/adoption-site/internal/core/domain"
)

// ctxIdentity returns the identity the Session middleware bound to the
// request, or Anonymous when none was bound.
func ctxIdentity(c echo.Context) domain.Identity {
	return middleware.IdentityFrom(c)
}

// render executes a view with the caller's identity merged into its data.
func render(c echo.Context, code int, view string, data echo.Map) error {
	if data == nil {
		data = echo.Map{}
	}
	data["Me"] = ctxIdentity(c)
	return c.Render(code, view, data)
}

// seeOther answers a successful form post.
func seeOther(c echo.Context, path string) error {
	return c.Redirect(http.StatusSeeOther, path)
}

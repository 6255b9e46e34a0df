package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionCookie writes and clears the cookie that carries the session token.
type SessionCookie struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

func (s SessionCookie) set(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     s.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s SessionCookie) clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     s.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s SessionCookie) read(c echo.Context) string {
	ck, err := c.Cookie(s.Name)
	if err != nil {
		return ""
	}
	return ck.Value
}

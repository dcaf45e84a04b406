package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// TokenCookieName holds the signed session token.
const TokenCookieName = "jwt"

// TokenCookie writes and clears the session token cookie.
type TokenCookie struct {
	MaxAge time.Duration
	// Secure restricts the cookie to HTTPS. Set in production.
	Secure bool
}

func (tc TokenCookie) Set(c echo.Context, token string) {
	maxAge := tc.MaxAge
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	c.SetCookie(&http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Expires:  time.Now().Add(maxAge),
		HttpOnly: true,
		Secure:   tc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (tc TokenCookie) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   tc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/api/metrics"
	"github.com/csemotors/dealership/internal/core/ports"
)

const (
	LoginPath       = "/account/login"
	loginNotice     = "Please log in."
	forbiddenNotice = "You are not authorized to view that page. Please log in with an authorized account."
)

// Session verifies the token cookie on every request. No cookie leaves the
// request anonymous; a valid token attaches its claims; an invalid or
// expired one clears the cookie and redirects to the login page.
func Session(tokens ports.TokenService, cookie TokenCookie) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := c.Cookie(TokenCookieName)
			if err != nil || raw.Value == "" {
				return next(c)
			}

			claims, err := tokens.Verify(raw.Value)
			if err != nil {
				metrics.TokenRejectionsTotal.Inc()
				cookie.Clear(c)
				AddNotice(c, loginNotice)
				return c.Redirect(http.StatusSeeOther, LoginPath)
			}

			SetIdentity(c, claims)
			return next(c)
		}
	}
}

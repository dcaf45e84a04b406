package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/api/metrics"
	"github.com/csemotors/dealership/internal/core/domain"
)

// RequireLogin redirects anonymous requests to the login page.
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := Identity(c); !ok {
				metrics.AccessDeniedTotal.WithLabelValues("login").Inc()
				AddNotice(c, loginNotice)
				return c.Redirect(http.StatusSeeOther, LoginPath)
			}
			return next(c)
		}
	}
}

// RequireRole admits only identities holding one of allowedRoles. Anonymous
// and under-privileged requests get the same redirect and notice.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := Identity(c)
			if ok {
				if _, permitted := allowed[claims.Type]; permitted {
					return next(c)
				}
			}
			metrics.AccessDeniedTotal.WithLabelValues("role").Inc()
			AddNotice(c, forbiddenNotice)
			return c.Redirect(http.StatusSeeOther, LoginPath)
		}
	}
}

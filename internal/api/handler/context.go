package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/core/domain"
)

// ctxIdentity returns the claims attached by the Session middleware. Routes
// calling it sit behind RequireLogin, so a miss means the middleware chain
// is misconfigured.
func ctxIdentity(c echo.Context) (*domain.Claims, error) {
	claims, ok := middleware.Identity(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// activityFor builds an audit record stamped with the caller's address and
// request id.
func activityFor(c echo.Context, kind domain.ActivityKind, accountID uint, email string) domain.Activity {
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = c.Request().Header.Get(echo.HeaderXRequestID)
	}
	return domain.Activity{
		Kind:      kind,
		AccountID: accountID,
		Email:     email,
		IP:        c.RealIP(),
		RequestID: requestID,
	}
}

package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/core/domain"
)

const (
	identityKey = "identity"
	noticesKey  = "notices"
)

// SetIdentity attaches verified claims to the request.
func SetIdentity(c echo.Context, claims *domain.Claims) {
	c.Set(identityKey, claims)
}

// Identity returns the claims of the logged-in account, if any.
func Identity(c echo.Context) (*domain.Claims, bool) {
	claims, ok := c.Get(identityKey).(*domain.Claims)
	return claims, ok && claims != nil
}

package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/psikobank/user-registry/internal/core/domain"
	"github.com/psikobank/user-registry/internal/core/ports"
)

const (
	claimsKey    = "auth.claims"
	requesterKey = "auth.requester"
)

// ClaimsFrom returns the token claims stored by Auth.
func ClaimsFrom(c echo.Context) (ports.TokenClaims, bool) {
	claims, ok := c.Get(claimsKey).(ports.TokenClaims)
	return claims, ok
}

// RequesterFrom returns the user record stored by Requester.
func RequesterFrom(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(requesterKey).(*domain.User)
	return u, ok && u != nil
}

// SetRequester stores u as the authenticated requester. Exposed for handler tests.
func SetRequester(c echo.Context, u *domain.User) {
	c.Set(requesterKey, u)
}

// SetClaims stores verified token claims. Exposed for handler tests.
func SetClaims(c echo.Context, claims ports.TokenClaims) {
	c.Set(claimsKey, claims)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/psikobank/user-registry/internal/api/middleware"
	"github.com/psikobank/user-registry/internal/core/domain"
)

// requester returns the user loaded by the Requester middleware. Its absence
// means the route was mounted without the auth chain.
func requester(c echo.Context) (*domain.User, error) {
	u, ok := middleware.RequesterFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return u, nil
}

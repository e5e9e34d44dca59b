package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/psikobank/user-registry/internal/api/metrics"
	"github.com/psikobank/user-registry/internal/core/domain"
)

// RBAC lets a request through only when the requester's role may perform
// action on some target at all. Target-specific rules stay in the service.
func RBAC(action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requester, ok := RequesterFrom(c)
			if !ok || !domain.CanPerform(requester.Role, action, "") {
				err := domain.Forbidden("Unauthorized")
				metrics.Observe(string(action), action, err)
				return err
			}
			return next(c)
		}
	}
}

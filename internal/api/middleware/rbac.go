package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/productmgmt/product-api/internal/api/metrics"
	"github.com/productmgmt/product-api/internal/core/domain"
)

// RBAC admits an authenticated principal only when its role is one of roles.
// It reads the principal stored by Auth, so it must be chained after it.
// A valid token carrying another role gets 403.
func RBAC(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := c.Get(PrincipalKey).(domain.Principal)
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("no_principal").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if !slices.Contains(roles, principal.Role) {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden_role").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/productmgmt/product-api/internal/api/metrics"
	"github.com/productmgmt/product-api/internal/pkg/jwtauth"
)

// Context keys populated by Auth.
const (
	UsernameKey  = "username"
	RoleKey      = "role"
	PrincipalKey = "principal"
)

// Auth validates the bearer token and injects the principal into context.
func Auth(cfg jwtauth.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return reject(c, "missing_header", "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return reject(c, "invalid_header", "invalid authorization header")
			}

			claims, err := jwtauth.Parse(cfg, strings.TrimSpace(parts[1]))
			if err != nil {
				return reject(c, jwtauth.Reason(err), "invalid token")
			}

			principal := claims.Principal()
			c.Set(UsernameKey, principal.Username)
			c.Set(RoleKey, principal.Role)
			c.Set(PrincipalKey, principal)

			return next(c)
		}
	}
}

func reject(c echo.Context, reason, msg string) error {
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}

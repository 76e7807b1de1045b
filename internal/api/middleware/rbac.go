package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-api/internal/core/domain"
)

// RBAC enforces role-based access control on the user injected by Auth.
// The request passes when the user holds any of allowedRoles.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(UserKey).(*domain.User)
			if user == nil {
				return domain.ErrUnauthorized
			}
			for _, role := range allowedRoles {
				if user.HasRole(role) {
					return next(c)
				}
			}
			return domain.ErrForbidden
		}
	}
}

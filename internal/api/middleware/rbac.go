package middleware

import (
	"fmt"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/appzeto/food-admin/internal/core/domain"
)

// RBAC admits requests whose role, as stored by Auth, is one of roles.
// Rejections surface as domain.ErrForbidden for the central error handler.
func RBAC(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if role == "" || !slices.Contains(roles, role) {
				return fmt.Errorf("%w: role %q", domain.ErrForbidden, role)
			}
			return next(c)
		}
	}
}

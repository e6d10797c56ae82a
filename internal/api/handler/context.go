package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/appzeto/food-admin/internal/api/middleware"
)

// ctxAdminID returns the admin id injected by the Auth middleware, or "" when
// the admin routes run without authentication (no JWT_SECRET configured).
func ctxAdminID(c echo.Context) string {
	id, _ := c.Get(middleware.ContextAdminID).(string)
	return id
}

package middleware

import (
	"net/http"

	"storefront/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// AdminRoleGuard lets only admins through. It must run after AuthJWT.
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(model.Role)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}
			if role != model.RoleAdmin {
				return c.JSON(http.StatusForbidden, errorJSON("Forbidden"))
			}
			return next(c)
		}
	}
}

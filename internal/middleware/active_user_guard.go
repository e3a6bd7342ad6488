package middleware

import (
	"errors"
	"net/http"

	"storefront/internal/logging"
	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
)

// ActiveUserGuard reloads the caller after AuthJWT. A deleted or deactivated
// account is rejected even while its token is unexpired, and the role on the
// context is replaced with the stored one.
func ActiveUserGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(CtxUserIDKey).(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}

			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}
			if err != nil {
				c.Logger().Errorj(logging.Fields{
					RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
					UserID:    userID,
					Step:      "active_user_guard",
					Error:     err,
				}.JSON())
				return c.JSON(http.StatusInternalServerError, errorJSON("Server error"))
			}
			if !user.IsActive {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}

			c.Set(CtxUserRoleKey, user.Role)
			return next(c)
		}
	}
}

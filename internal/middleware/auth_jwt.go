package middleware

import (
	"net/http"
	"strings"

	auth "storefront/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey   = "user_id"   // int64
	CtxUserRoleKey = "user_role" // model.Role
)

// TokenVerifier resolves a raw bearer token to an identity.
type TokenVerifier interface {
	Verify(raw string) (auth.Identity, error)
}

// AuthJWT requires "Authorization: Bearer <token>" and stores the caller's id
// and role on the echo context.
func AuthJWT(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authz := c.Request().Header.Get(echo.HeaderAuthorization)
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}

			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}

			id, err := verifier.Verify(rawToken)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("Invalid or expired token"))
			}

			c.Set(CtxUserIDKey, id.UserID)
			c.Set(CtxUserRoleKey, id.Role)
			return next(c)
		}
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Message: msg}
}

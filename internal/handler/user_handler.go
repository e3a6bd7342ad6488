package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /users/me
type UserHandler struct {
	uc *usecase.UserUsecase
}

func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

type updateMeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	u := e.Group("/users", g.Caller...)
	u.GET("/me", h.me)
	u.PATCH("/me", h.updateMe)
	u.DELETE("/me", h.deactivateMe)
}

func (h *UserHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	u, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, userResponse{User: u})
}

func (h *UserHandler) updateMe(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req updateMeRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.Validation("Invalid request data"))
	}
	req.Email = model.NormalizeEmail(req.Email)
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	u, err := h.uc.UpdateEmail(c.Request().Context(), userID, req.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, userResponse{User: u})
}

// deactivateMe keeps the row; the account just stops authenticating.
func (h *UserHandler) deactivateMe(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	u, err := h.uc.Deactivate(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, userResponse{User: u})
}

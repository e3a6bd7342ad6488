package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase
	loginUC    *auth.LoginUsecase
	userUC     *usecase.UserUsecase
}

// DI
func NewAuthHandler(registerUC *auth.RegisterUserUsecase, loginUC *auth.LoginUsecase, userUC *usecase.UserUsecase) *AuthHandler {
	return &AuthHandler{registerUC: registerUC, loginUC: loginUC, userUC: userUC}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	User model.User `json:"user"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	a := e.Group("/auth")
	a.POST("/register", h.register)
	a.POST("/login", h.login)
	a.GET("/me", h.me, g.Caller...)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.Validation("Invalid request data"))
	}
	req.Email = model.NormalizeEmail(req.Email)
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.Validation("Invalid request data"))
	}
	req.Email = model.NormalizeEmail(req.Email)
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	u, err := h.userUC.Me(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, userResponse{User: u})
}

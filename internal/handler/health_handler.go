package handler

import (
	"net/http"
	"time"

	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	health repository.HealthRepository
}

func NewHealthHandler(health repository.HealthRepository) *HealthHandler {
	return &HealthHandler{health: health}
}

type healthResponse struct {
	Status string `json:"status"`
}

type dbHealthResponse struct {
	DB  string     `json:"db"`
	Now *time.Time `json:"now,omitempty"`
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.liveness)
	e.GET("/db-health", h.dbHealth)
}

func (h *HealthHandler) liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

func (h *HealthHandler) dbHealth(c echo.Context) error {
	now, err := h.health.Now(c.Request().Context())
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, dbHealthResponse{DB: "error"})
	}
	return c.JSON(http.StatusOK, dbHealthResponse{DB: "ok", Now: &now})
}

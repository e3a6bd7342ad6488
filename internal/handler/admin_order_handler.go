package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type orderStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid cancelled refunded"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	admin := e.Group("/admin", g.Admin...)
	admin.GET("/orders", h.list)
	admin.GET("/orders/:id", h.detail)
	admin.PATCH("/orders/:id/status", h.updateStatus)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ordersResponse{Orders: out})
}

func (h *AdminOrderHandler) detail(c echo.Context) error {
	orderID, err := parseIDParam(c, "id", "Order id must be a number")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orderResponse{Order: out})
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	orderID, err := parseIDParam(c, "id", "Order id must be a number")
	if err != nil {
		return writeError(c, err)
	}

	var req orderStatusUpdateRequest
	if err := bindAndValidate(c, &req, "Invalid status"); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), adminID, orderID, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orderResponse{Order: out})
}

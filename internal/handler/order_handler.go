package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /orders, scoped to the caller
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type orderResponse struct {
	Order usecase.OrderOutput `json:"order"`
}

type ordersResponse struct {
	Orders []usecase.OrderOutput `json:"orders"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	o := e.Group("/orders", g.Caller...)
	o.GET("/me", h.listMine)
	o.GET("/:id", h.getMine)
}

func (h *OrderHandler) listMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ordersResponse{Orders: out})
}

// getMine answers 404 for another user's order.
func (h *OrderHandler) getMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	orderID, err := parseIDParam(c, "id", "Order id must be a number")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetMine(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orderResponse{Order: out})
}

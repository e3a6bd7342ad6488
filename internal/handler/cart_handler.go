package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cart
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type addCartItemRequest struct {
	ProductID Int64Number `json:"productId" validate:"required,gt=0"`
	Quantity  Int64Number `json:"quantity" validate:"required,gt=0"`
}

type updateCartItemRequest struct {
	Quantity Int64Number `json:"quantity" validate:"required,gt=0"`
}

type cartResponse struct {
	Cart usecase.CartOutput `json:"cart"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	cart := e.Group("/cart", g.Caller...)
	cart.GET("", h.getCart)
	cart.DELETE("", h.clear)
	cart.POST("/items", h.addItem)
	cart.PATCH("/items/:itemId", h.updateItem)
	cart.DELETE("/items/:itemId", h.deleteItem)
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cartResponse{Cart: out})
}

func (h *CartHandler) addItem(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req addCartItemRequest
	if err := bindAndValidate(c, &req, "Invalid cart item data"); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.AddItem(c.Request().Context(), userID, usecase.AddItemInput{
		ProductID: int64(req.ProductID),
		Quantity:  int64(req.Quantity),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, cartResponse{Cart: out})
}

func (h *CartHandler) updateItem(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	itemID, err := parseIDParam(c, "itemId", "Invalid cart item id")
	if err != nil {
		return writeError(c, err)
	}

	var req updateCartItemRequest
	if err := bindAndValidate(c, &req, "Invalid cart item data"); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.UpdateItemQuantity(c.Request().Context(), userID, itemID, int64(req.Quantity))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cartResponse{Cart: out})
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	itemID, err := parseIDParam(c, "itemId", "Invalid cart item id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.DeleteItem(c.Request().Context(), userID, itemID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cartResponse{Cart: out})
}

func (h *CartHandler) clear(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Clear(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cartResponse{Cart: out})
}

package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /products: reads are public, writes are admin only.
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// stock_quantity: absent means 0, null means unlimited.
type productCreateRequest struct {
	Name          string        `json:"name" validate:"required,max=255"`
	Description   *string       `json:"description" validate:"omitempty,max=5000"`
	Price         *Int64Number  `json:"price" validate:"required,gte=0"`
	StockQuantity OptionalInt64 `json:"stock_quantity"`
	IsActive      *bool         `json:"is_active"`
}

// Every field is optional; null stock_quantity switches to unlimited.
type productUpdateRequest struct {
	Name          *string       `json:"name" validate:"omitempty,min=1,max=255"`
	Description   *string       `json:"description" validate:"omitempty,max=5000"`
	Price         *Int64Number  `json:"price" validate:"omitempty,gte=0"`
	StockQuantity OptionalInt64 `json:"stock_quantity"`
	IsActive      *bool         `json:"is_active"`
}

type productResponse struct {
	Product model.Product `json:"product"`
}

type productsResponse struct {
	Products []model.Product `json:"products"`
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	p := e.Group("/products")
	p.GET("", h.list)
	p.GET("/:id", h.detail)
	p.POST("", h.create, g.Admin...)
	p.PUT("/:id", h.update, g.Admin...)
	p.DELETE("/:id", h.deactivate, g.Admin...)
}

func (h *ProductHandler) list(c echo.Context) error {
	products, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, productsResponse{Products: products})
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := parseIDParam(c, "id", "Invalid product id")
	if err != nil {
		return writeError(c, err)
	}
	p, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, productResponse{Product: p})
}

func (h *ProductHandler) create(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req productCreateRequest
	if err := bindAndValidate(c, &req, "Invalid product data"); err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.Create(c.Request().Context(), adminID, usecase.CreateProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          int64(*req.Price),
		Stock:          req.StockQuantity.Ptr(),
		StockUnlimited: req.StockQuantity.Null,
		IsActive:       req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, productResponse{Product: p})
}

func (h *ProductHandler) update(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := parseIDParam(c, "id", "Invalid product id")
	if err != nil {
		return writeError(c, err)
	}

	var req productUpdateRequest
	if err := bindAndValidate(c, &req, "Invalid product data"); err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.Update(c.Request().Context(), adminID, id, usecase.UpdateProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          Int64Ptr(req.Price),
		Stock:          req.StockQuantity.Ptr(),
		StockUnlimited: req.StockQuantity.Null,
		IsActive:       req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, productResponse{Product: p})
}

// deactivate is a soft delete.
func (h *ProductHandler) deactivate(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := parseIDParam(c, "id", "Invalid product id")
	if err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.Deactivate(c.Request().Context(), adminID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, productResponse{Product: p})
}

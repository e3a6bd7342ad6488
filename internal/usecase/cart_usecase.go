package usecase

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// CartUsecase owns the ACTIVE cart lifecycle and the quantity-merge policy.
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	metrics      Metrics

	// cumulativeStock checks (already in cart + requested) instead of the
	// request alone.
	cumulativeStock bool
}

const maxAddAttempts = 2

type CartOption func(*CartUsecase)

func WithCumulativeStockCheck(on bool) CartOption {
	return func(u *CartUsecase) { u.cumulativeStock = on }
}

func WithCartMetrics(m Metrics) CartOption {
	return func(u *CartUsecase) { u.metrics = metricsOrNoop(m) }
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	opts ...CartOption,
) *CartUsecase {
	u := &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		metrics:      noopMetrics{},
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Price is the live product price; carts are not snapshots.
type CartItemOutput struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type CartOutput struct {
	ID        int64            `json:"id"`
	Status    model.CartStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Items     []CartItemOutput `json:"items"`
	Total     int64            `json:"total"`
}

type AddItemInput struct {
	ProductID int64
	Quantity  int64
}

// GetCart returns the ACTIVE cart, creating an empty one on first touch.
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, Unauthenticated("Unauthorized")
	}
	cart, err := u.cartRepo.GetOrCreateActive(ctx, userID)
	if err != nil {
		return CartOutput{}, Internal("get active cart", err)
	}
	return u.buildCart(ctx, cart)
}

// AddItem upserts (cart, product); a repeated add sums the quantity.
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, in AddItemInput) (out CartOutput, err error) {
	defer func() { u.metrics.CartItemAdded(outcomeOf(err)) }()

	if userID <= 0 {
		return CartOutput{}, Unauthenticated("Unauthorized")
	}
	if fields := validateAddItem(in); len(fields) > 0 {
		return CartOutput{}, Validation("Invalid cart item data", fields...)
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartOutput{}, Domain(CodeProductNotFound, "Product not found")
	}
	if err != nil {
		return CartOutput{}, Internal("find product", err)
	}
	if !p.IsActive {
		return CartOutput{}, Domain(CodeInactiveProduct, "Product is not available")
	}

	// per-request check; the ACTIVE cart is created only after it passes
	if !u.cumulativeStock && !p.HasStockFor(in.Quantity) {
		return CartOutput{}, Domain(CodeInsufficientStock, "Not enough stock for that quantity")
	}

	// a checkout can close the cart between lookup and insert; the retry
	// lands the item in the fresh ACTIVE cart
	for attempt := 0; attempt < maxAddAttempts; attempt++ {
		cart, err := u.cartRepo.GetOrCreateActive(ctx, userID)
		if err != nil {
			return CartOutput{}, Internal("get active cart", err)
		}

		if u.cumulativeStock {
			inCart, err := u.cartItemRepo.QuantityOf(ctx, cart.ID, p.ID)
			if err != nil {
				return CartOutput{}, Internal("cart quantity", err)
			}
			if !p.HasStockFor(inCart + in.Quantity) {
				return CartOutput{}, Domain(CodeInsufficientStock, "Not enough stock for that quantity")
			}
		}

		err = u.cartItemRepo.Upsert(ctx, cart.ID, p.ID, in.Quantity)
		if errors.Is(err, repo.ErrCartNotActive) {
			continue
		}
		if err != nil {
			return CartOutput{}, Internal("upsert cart item", err)
		}
		return u.buildCart(ctx, cart)
	}
	return CartOutput{}, Conflict("Cart is no longer active")
}

// UpdateItemQuantity sets an absolute quantity on an item of the caller's ACTIVE cart.
func (u *CartUsecase) UpdateItemQuantity(ctx context.Context, userID int64, itemID int64, quantity int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, Unauthenticated("Unauthorized")
	}
	if itemID <= 0 {
		return CartOutput{}, Validation("Invalid item id", FieldError{Field: "itemId", Message: "must be a positive integer"})
	}
	if quantity < 1 {
		return CartOutput{}, Validation("Invalid cart item data", FieldError{Field: "quantity", Message: "must be at least 1"})
	}

	err := u.cartItemRepo.UpdateQuantityOwned(ctx, userID, itemID, quantity)
	if errors.Is(err, repo.ErrNotFound) {
		return CartOutput{}, NotFound("Cart item not found")
	}
	if err != nil {
		return CartOutput{}, Internal("update cart item", err)
	}
	return u.GetCart(ctx, userID)
}

func (u *CartUsecase) DeleteItem(ctx context.Context, userID int64, itemID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, Unauthenticated("Unauthorized")
	}
	if itemID <= 0 {
		return CartOutput{}, Validation("Invalid item id", FieldError{Field: "itemId", Message: "must be a positive integer"})
	}

	err := u.cartItemRepo.DeleteOwned(ctx, userID, itemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartOutput{}, NotFound("Cart item not found")
	}
	if err != nil {
		return CartOutput{}, Internal("delete cart item", err)
	}
	return u.GetCart(ctx, userID)
}

// Clear empties the ACTIVE cart; the cart row itself stays.
func (u *CartUsecase) Clear(ctx context.Context, userID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, Unauthenticated("Unauthorized")
	}
	if err := u.cartItemRepo.ClearActive(ctx, userID); err != nil {
		return CartOutput{}, Internal("clear cart", err)
	}
	return u.GetCart(ctx, userID)
}

func (u *CartUsecase) buildCart(ctx context.Context, cart model.Cart) (CartOutput, error) {
	lines, err := u.cartItemRepo.ListLines(ctx, cart.ID)
	if err != nil {
		return CartOutput{}, Internal("list cart lines", err)
	}
	return toCartOutput(cart, lines), nil
}

func toCartOutput(cart model.Cart, lines []model.CartLine) CartOutput {
	items := make([]CartItemOutput, 0, len(lines))
	for _, l := range lines {
		items = append(items, CartItemOutput{
			ID:        l.ItemID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
		})
	}
	return CartOutput{
		ID:        cart.ID,
		Status:    cart.Status,
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
		Items:     items,
		Total:     model.CartTotal(lines),
	}
}

func validateAddItem(in AddItemInput) []FieldError {
	var fields []FieldError
	if in.ProductID <= 0 {
		fields = append(fields, FieldError{Field: "productId", Message: "productId must be a positive number"})
	}
	if in.Quantity < 1 {
		fields = append(fields, FieldError{Field: "quantity", Message: "Quantity must be at least 1"})
	}
	return fields
}

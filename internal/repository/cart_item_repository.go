package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// Every mutation by item id is scoped to the caller's ACTIVE cart in the
// statement itself; ErrNotFound covers both "absent" and "not yours".
type CartItemRepository interface {
	ListLines(ctx context.Context, cartID int64) ([]model.CartLine, error)
	// Atomic insert-or-increment on (cart_id, product_id); ErrCartNotActive
	// when the cart is no longer ACTIVE.
	Upsert(ctx context.Context, cartID int64, productID int64, addQty int64) error
	QuantityOf(ctx context.Context, cartID int64, productID int64) (int64, error)
	UpdateQuantityOwned(ctx context.Context, userID int64, itemID int64, qty int64) error
	DeleteOwned(ctx context.Context, userID int64, itemID int64) error
	ClearActive(ctx context.Context, userID int64) error
}

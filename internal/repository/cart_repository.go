package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CartRepository interface {
	// Conflict-safe: concurrent callers for one user all get the same ACTIVE cart.
	GetOrCreateActive(ctx context.Context, userID int64) (model.Cart, error)
	FindActiveByUserID(ctx context.Context, userID int64) (model.Cart, error)
	// LockByID selects the cart FOR UPDATE.
	LockByID(ctx context.Context, cartID int64) (model.Cart, error)
	// Conditional on the current status; ErrCartNotActive when it moved.
	UpdateStatus(ctx context.Context, cartID int64, from model.CartStatus, to model.CartStatus) error
}

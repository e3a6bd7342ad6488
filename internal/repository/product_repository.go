package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// Catalog persistence. Deactivation is the only delete.
type ProductRepository interface {
	ListActive(ctx context.Context) ([]model.Product, error)
	FindActiveByID(ctx context.Context, id int64) (model.Product, error)
	// FindByID ignores is_active so callers can tell missing from inactive.
	FindByID(ctx context.Context, id int64) (model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, id int64, patch model.ProductPatch) (model.Product, error)
	Deactivate(ctx context.Context, id int64) (model.Product, error)

	// LockByIDs takes row locks (FOR UPDATE) in ascending id order.
	LockByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
}

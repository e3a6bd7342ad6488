package repository

import "context"

type InventoryRepository interface {
	// Decrements only when stock is NULL (unlimited) or >= qty.
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
}

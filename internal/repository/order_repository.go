package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	// newest first
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	// ErrNotFound when absent or owned by someone else.
	FindByIDForUser(ctx context.Context, userID int64, orderID int64) (model.Order, error)

	ListAllWithOwner(ctx context.Context) ([]model.OrderWithOwner, error)
	FindByIDWithOwner(ctx context.Context, orderID int64) (model.OrderWithOwner, error)
	LockByID(ctx context.Context, orderID int64) (model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (model.Order, error)
}

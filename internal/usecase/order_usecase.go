package usecase

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type OrderUsecase struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
}

func NewOrderUsecase(orders repo.OrderRepository, orderItems repo.OrderItemRepository) *OrderUsecase {
	return &OrderUsecase{orders: orders, orderItems: orderItems}
}

type OrderItemOutput struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Price       int64     `json:"price"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// Email is set only on admin views; Items only on single-order views.
type OrderOutput struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	Email       string            `json:"email,omitempty"`
	Status      model.OrderStatus `json:"status"`
	TotalAmount int64             `json:"total_amount"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Items       []OrderItemOutput `json:"items,omitempty"`
}

// ListMine returns the caller's orders, newest first, without items.
func (u *OrderUsecase) ListMine(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return nil, Unauthenticated("Unauthorized")
	}
	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, Internal("list orders", err)
	}
	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o, nil))
	}
	return outs, nil
}

// GetMine is ownership-scoped in the query; someone else's order is a plain 404.
func (u *OrderUsecase) GetMine(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, Unauthenticated("Unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, Validation("Order id must be a number", FieldError{Field: "id", Message: "must be a positive integer"})
	}

	o, err := u.orders.FindByIDForUser(ctx, userID, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NotFound("Order not found")
	}
	if err != nil {
		return OrderOutput{}, Internal("find order", err)
	}

	items, err := u.orderItems.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, Internal("list order items", err)
	}
	return toOrderOutput(o, items), nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	out := OrderOutput{
		ID:          o.ID,
		UserID:      o.UserID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if items != nil {
		out.Items = make([]OrderItemOutput, 0, len(items))
		for _, it := range items {
			out.Items = append(out.Items, OrderItemOutput{
				ID:          it.ID,
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Price:       it.Price,
				Quantity:    it.Quantity,
				CreatedAt:   it.CreatedAt,
			})
		}
	}
	return out
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
)

// AdminOrderUsecase reads and writes any order; ownership is not checked.
type AdminOrderUsecase struct {
	tx         repo.TransactionManager
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
}

func NewAdminOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, orderItems repo.OrderItemRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, orders: orders, orderItems: orderItems}
}

type statusChange struct {
	Status model.OrderStatus `json:"status"`
}

type orderStatusChangedEvent struct {
	OrderID int64             `json:"order_id"`
	UserID  int64             `json:"user_id"`
	From    model.OrderStatus `json:"from"`
	To      model.OrderStatus `json:"to"`
}

func (u *AdminOrderUsecase) List(ctx context.Context) ([]OrderOutput, error) {
	rows, err := u.orders.ListAllWithOwner(ctx)
	if err != nil {
		return nil, Internal("list all orders", err)
	}
	outs := make([]OrderOutput, 0, len(rows))
	for _, row := range rows {
		o := toOrderOutput(row.Order, nil)
		o.Email = row.Email
		outs = append(outs, o)
	}
	return outs, nil
}

func (u *AdminOrderUsecase) Get(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, Validation("Order id must be a number", FieldError{Field: "id", Message: "must be a positive integer"})
	}

	row, err := u.orders.FindByIDWithOwner(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NotFound("Order not found")
	}
	if err != nil {
		return OrderOutput{}, Internal("find order", err)
	}

	items, err := u.orderItems.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, Internal("list order items", err)
	}
	out := toOrderOutput(row.Order, items)
	out.Email = row.Email
	return out, nil
}

// UpdateStatus accepts any enumerated status from any other. The audit row and
// the outbox event commit with the status change.
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorUserID int64, orderID int64, status string) (OrderOutput, error) {
	if actorUserID <= 0 {
		return OrderOutput{}, Unauthenticated("Unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, Validation("Order id must be a number", FieldError{Field: "id", Message: "must be a positive integer"})
	}
	next := model.OrderStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return OrderOutput{}, Validation("Invalid status", FieldError{
			Field:   "status",
			Message: "must be one of pending, paid, cancelled, refunded",
		})
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Orders().LockByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NotFound("Order not found")
		}
		if err != nil {
			return Internal("lock order", err)
		}

		after, err := r.Orders().UpdateStatus(ctx, orderID, next)
		if errors.Is(err, repo.ErrNotFound) {
			return NotFound("Order not found")
		}
		if err != nil {
			return Internal("update order status", err)
		}

		beforeJSON, _ := json.Marshal(statusChange{Status: before.Status})
		afterJSON, _ := json.Marshal(statusChange{Status: after.Status})
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   string(beforeJSON),
			AfterJSON:    string(afterJSON),
		}); err != nil {
			return Internal("write audit log", err)
		}

		payload, err := json.Marshal(orderStatusChangedEvent{
			OrderID: after.ID,
			UserID:  after.UserID,
			From:    before.Status,
			To:      after.Status,
		})
		if err != nil {
			return Internal("encode status event", err)
		}
		if err := r.Outbox().Insert(ctx, model.OutboxEvent{
			EventID: uuid.NewString(),
			Type:    model.EventOrderStatusChanged,
			Key:     strconv.FormatInt(after.ID, 10),
			Payload: string(payload),
		}); err != nil {
			return Internal("insert outbox event", err)
		}

		out = toOrderOutput(after, nil)
		return nil
	})
	if err != nil {
		if _, ok := AsAppError(err); ok {
			return OrderOutput{}, err
		}
		return OrderOutput{}, Internal("update order status", err)
	}
	return out, nil
}

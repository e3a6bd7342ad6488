package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
)

// CheckoutUsecase turns the caller's ACTIVE cart into a pending order.
type CheckoutUsecase struct {
	tx      repo.TransactionManager
	metrics Metrics
}

func NewCheckoutUsecase(tx repo.TransactionManager, metrics Metrics) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx, metrics: metricsOrNoop(metrics)}
}

type CheckoutOutput struct {
	Message string      `json:"message"`
	Order   OrderOutput `json:"order"`
}

type orderEventItem struct {
	ProductID int64 `json:"product_id"`
	Price     int64 `json:"price"`
	Quantity  int64 `json:"quantity"`
}

type orderCreatedEvent struct {
	OrderID     int64            `json:"order_id"`
	UserID      int64            `json:"user_id"`
	TotalAmount int64            `json:"total_amount"`
	Items       []orderEventItem `json:"items"`
}

// Checkout runs as one transaction: any failure leaves no order, no stock
// change and the cart still ACTIVE.
func (u *CheckoutUsecase) Checkout(ctx context.Context, userID int64) (out CheckoutOutput, err error) {
	defer func() { u.metrics.CheckoutFinished(outcomeOf(err)) }()

	if userID <= 0 {
		return CheckoutOutput{}, Unauthenticated("Unauthorized")
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().GetOrCreateActive(ctx, userID)
		if err != nil {
			return Internal("get active cart", err)
		}

		// serializes concurrent checkouts of the same cart
		cart, err = r.Carts().LockByID(ctx, cart.ID)
		if err != nil {
			return Internal("lock cart", err)
		}
		if cart.Status != model.CartStatusActive {
			return Conflict("Cart is no longer active")
		}

		lines, err := r.CartItems().ListLines(ctx, cart.ID)
		if err != nil {
			return Internal("list cart lines", err)
		}
		if len(lines) == 0 {
			return Domain(CodeEmptyCart, "Cart is empty")
		}

		lines, err = lockAndRefresh(ctx, r.Products(), lines)
		if err != nil {
			return err
		}
		for _, l := range lines {
			if !model.HasStock(l.StockQuantity, l.Quantity) {
				return Domain(CodeInsufficientStock, "Not enough stock to complete checkout")
			}
		}

		order := &model.Order{
			UserID:      userID,
			Status:      model.OrderStatusPending,
			TotalAmount: model.CartTotal(lines),
		}
		if err := r.Orders().Create(ctx, order); err != nil {
			return Internal("create order", err)
		}

		items := make([]model.OrderItem, 0, len(lines))
		for _, l := range lines {
			items = append(items, model.SnapshotLine(l))
		}
		if err := r.OrderItems().CreateBulk(ctx, order.ID, items); err != nil {
			return Internal("create order items", err)
		}

		for _, l := range lines {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, l.ProductID, l.Quantity)
			if err != nil {
				return Internal("decrease stock", err)
			}
			if !ok {
				return Domain(CodeInsufficientStock, "Not enough stock to complete checkout")
			}
		}

		err = r.Carts().UpdateStatus(ctx, cart.ID, model.CartStatusActive, model.CartStatusCheckedOut)
		if errors.Is(err, repo.ErrCartNotActive) {
			return Conflict("Cart is no longer active")
		}
		if err != nil {
			return Internal("close cart", err)
		}

		event, err := newOrderCreatedEvent(*order, items)
		if err != nil {
			return Internal("encode order event", err)
		}
		if err := r.Outbox().Insert(ctx, event); err != nil {
			return Internal("insert outbox event", err)
		}

		out = CheckoutOutput{
			Message: "Checkout successful",
			Order:   toOrderOutput(*order, items),
		}
		return nil
	})
	if err != nil {
		if _, ok := AsAppError(err); ok {
			return CheckoutOutput{}, err
		}
		return CheckoutOutput{}, Internal("checkout", err)
	}
	return out, nil
}

// lockAndRefresh takes FOR UPDATE locks on every product in ascending id order
// and copies the locked name, price and stock onto the lines.
func lockAndRefresh(ctx context.Context, products repo.ProductRepository, lines []model.CartLine) ([]model.CartLine, error) {
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	locked, err := products.LockByIDs(ctx, ids)
	if err != nil {
		return nil, Internal("lock products", err)
	}
	byID := make(map[int64]model.Product, len(locked))
	for _, p := range locked {
		byID[p.ID] = p
	}

	refreshed := make([]model.CartLine, 0, len(lines))
	for _, l := range lines {
		p, ok := byID[l.ProductID]
		if !ok {
			return nil, Internal("lock products", repo.ErrNotFound)
		}
		l.Name = p.Name
		l.Price = p.Price
		l.StockQuantity = p.StockQuantity
		refreshed = append(refreshed, l)
	}
	return refreshed, nil
}

func newOrderCreatedEvent(o model.Order, items []model.OrderItem) (model.OutboxEvent, error) {
	payload := orderCreatedEvent{
		OrderID:     o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Items:       make([]orderEventItem, 0, len(items)),
	}
	for _, it := range items {
		payload.Items = append(payload.Items, orderEventItem{ProductID: it.ProductID, Price: it.Price, Quantity: it.Quantity})
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return model.OutboxEvent{}, err
	}
	return model.OutboxEvent{
		EventID: uuid.NewString(),
		Type:    model.EventOrderCreated,
		Key:     strconv.FormatInt(o.ID, 10),
		Payload: string(b),
	}, nil
}

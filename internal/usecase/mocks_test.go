package usecase_test

import (
	"context"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos
// =====================

// TxManagerMock runs fn against fixed Repos and returns fn's error as-is.
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	carts      *CartRepoMock
	cartItems  *CartItemRepoMock
	products   *ProductRepoMock
	inventory  *InventoryRepoMock
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	auditLogs  *AuditRepoMock
	outbox     *OutboxRepoMock
}

func newTxRepos() *TxReposMock {
	return &TxReposMock{
		carts:      new(CartRepoMock),
		cartItems:  new(CartItemRepoMock),
		products:   new(ProductRepoMock),
		inventory:  new(InventoryRepoMock),
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		auditLogs:  new(AuditRepoMock),
		outbox:     new(OutboxRepoMock),
	}
}

func (r *TxReposMock) Carts() repo.CartRepository           { return r.carts }
func (r *TxReposMock) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *TxReposMock) Products() repo.ProductRepository     { return r.products }
func (r *TxReposMock) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }
func (r *TxReposMock) Outbox() repo.OutboxRepository        { return r.outbox }

// =====================
// Repository mocks
// =====================

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateActive(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindActiveByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) LockByID(ctx context.Context, cartID int64) (model.Cart, error) {
	args := m.Called(ctx, cartID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) UpdateStatus(ctx context.Context, cartID int64, from model.CartStatus, to model.CartStatus) error {
	return m.Called(ctx, cartID, from, to).Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListLines(ctx context.Context, cartID int64) ([]model.CartLine, error) {
	args := m.Called(ctx, cartID)
	lines, _ := args.Get(0).([]model.CartLine)
	return lines, args.Error(1)
}

func (m *CartItemRepoMock) Upsert(ctx context.Context, cartID int64, productID int64, addQty int64) error {
	return m.Called(ctx, cartID, productID, addQty).Error(0)
}

func (m *CartItemRepoMock) QuantityOf(ctx context.Context, cartID int64, productID int64) (int64, error) {
	args := m.Called(ctx, cartID, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CartItemRepoMock) UpdateQuantityOwned(ctx context.Context, userID int64, itemID int64, qty int64) error {
	return m.Called(ctx, userID, itemID, qty).Error(0)
}

func (m *CartItemRepoMock) DeleteOwned(ctx context.Context, userID int64, itemID int64) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *CartItemRepoMock) ClearActive(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListActive(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *ProductRepoMock) FindActiveByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

// Create assigns ID 1 on success, like the store would.
func (m *ProductRepoMock) Create(ctx context.Context, p *model.Product) error {
	err := m.Called(ctx, p).Error(0)
	if err == nil && p.ID == 0 {
		p.ID = 1
	}
	return err
}

func (m *ProductRepoMock) Update(ctx context.Context, id int64, patch model.ProductPatch) (model.Product, error) {
	args := m.Called(ctx, id, patch)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Deactivate(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) LockByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

// Create assigns ID 100 on success.
func (m *OrderRepoMock) Create(ctx context.Context, order *model.Order) error {
	err := m.Called(ctx, order).Error(0)
	if err == nil && order.ID == 0 {
		order.ID = 100
	}
	return err
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Error(1)
}

func (m *OrderRepoMock) FindByIDForUser(ctx context.Context, userID int64, orderID int64) (model.Order, error) {
	args := m.Called(ctx, userID, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListAllWithOwner(ctx context.Context) ([]model.OrderWithOwner, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]model.OrderWithOwner)
	return rows, args.Error(1)
}

func (m *OrderRepoMock) FindByIDWithOwner(ctx context.Context, orderID int64) (model.OrderWithOwner, error) {
	args := m.Called(ctx, orderID)
	row, _ := args.Get(0).(model.OrderWithOwner)
	return row, args.Error(1)
}

func (m *OrderRepoMock) LockByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (model.Order, error) {
	args := m.Called(ctx, orderID, status)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	return m.Called(ctx, orderID, items).Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type OutboxRepoMock struct{ mock.Mock }

func (m *OutboxRepoMock) Insert(ctx context.Context, event model.OutboxEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *OutboxRepoMock) FetchPending(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	evs, _ := args.Get(0).([]model.OutboxEvent)
	return evs, args.Error(1)
}

func (m *OutboxRepoMock) MarkSent(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) UpdateEmail(ctx context.Context, userID int64, email string) (model.User, error) {
	args := m.Called(ctx, userID, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Deactivate(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

// =====================
// Metrics recorder
// =====================

type metricsRecorder struct {
	mu        sync.Mutex
	adds      []string
	checkouts []string
}

func (r *metricsRecorder) CartItemAdded(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adds = append(r.adds, outcome)
}

func (r *metricsRecorder) CheckoutFinished(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkouts = append(r.checkouts, outcome)
}

func int64p(v int64) *int64 { return &v }

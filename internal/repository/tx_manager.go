package repository

import "context"

// Repositories bound to one transaction.
type TxRepos interface {
	Carts() CartRepository
	CartItems() CartItemRepository
	Products() ProductRepository
	Inventory() InventoryRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	AuditLogs() AuditLogRepository
	Outbox() OutboxRepository
}

// TransactionManager hides begin/commit/rollback from usecases.
// fn returning an error rolls everything back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}

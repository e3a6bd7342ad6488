package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// Any enumerated status may follow any other; there is no transition graph.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// Order is immutable after creation except for Status (and UpdatedAt).
type Order struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64       `gorm:"not null;index" json:"user_id"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TotalAmount int64       `gorm:"not null" json:"total_amount"`
	CreatedAt   time.Time   `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// OrderWithOwner is the admin projection joined with users.email.
type OrderWithOwner struct {
	Order `gorm:"embedded"`
	Email string `gorm:"column:email"`
}

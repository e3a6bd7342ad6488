package model

import "time"

// OrderItem is a snapshot taken at checkout; later product edits never touch it.
type OrderItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64     `gorm:"not null;index" json:"order_id"`
	ProductID   int64     `gorm:"not null;index" json:"product_id"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Price       int64     `gorm:"not null" json:"price"`
	Quantity    int64     `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// SnapshotLine copies the live product values of a cart line.
func SnapshotLine(l CartLine) OrderItem {
	return OrderItem{
		ProductID:   l.ProductID,
		ProductName: l.Name,
		Price:       l.Price,
		Quantity:    l.Quantity,
	}
}

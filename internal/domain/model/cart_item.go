package model

import "time"

// (cart_id, product_id) is unique; repeated adds sum Quantity.
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;uniqueIndex:ux_cart_items_cart_product,priority:1" json:"cart_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:ux_cart_items_cart_product,priority:2;index" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// CartLine is a cart item joined with the live product row.
type CartLine struct {
	ItemID        int64
	ProductID     int64
	Name          string
	Price         int64
	StockQuantity *int64
	Quantity      int64
	CreatedAt     time.Time
}

func (l CartLine) Subtotal() int64 {
	return l.Price * l.Quantity
}

// CartTotal sums price*quantity over the lines in minor units.
func CartTotal(lines []CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

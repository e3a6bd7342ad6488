package model

import "time"

// Product.Price is in minor currency units. A nil StockQuantity means unlimited.
type Product struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Description   *string   `gorm:"type:text" json:"description"`
	Price         int64     `gorm:"not null" json:"price"`
	StockQuantity *int64    `gorm:"column:stock_quantity" json:"stock_quantity"`
	IsActive      bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// HasStockFor reports whether qty units can be taken from the product.
func (p Product) HasStockFor(qty int64) bool {
	return HasStock(p.StockQuantity, qty)
}

func HasStock(stock *int64, qty int64) bool {
	if stock == nil {
		return true
	}
	return qty <= *stock
}

// ProductPatch holds the subset of columns a partial update touches.
type ProductPatch struct {
	Name          *string
	Description   *string
	Price         *int64
	StockQuantity *int64
	ClearStock    bool
	IsActive      *bool
}

func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.StockQuantity == nil && !p.ClearStock && p.IsActive == nil
}

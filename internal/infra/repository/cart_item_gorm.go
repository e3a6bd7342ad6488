package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

// ownedActiveCart is the subquery every by-item-id mutation is scoped with.
func (r *CartItemGormRepository) ownedActiveCart(userID int64) *gorm.DB {
	return r.db.Model(&model.Cart{}).
		Select("id").
		Where("user_id = ? AND status = ?", userID, model.CartStatusActive)
}

// ListLines joins the live product name and price, oldest item first.
func (r *CartItemGormRepository) ListLines(ctx context.Context, cartID int64) ([]model.CartLine, error) {
	var lines []model.CartLine

	err := r.db.WithContext(ctx).
		Table("cart_items AS ci").
		Select("ci.id AS item_id, ci.product_id, p.name, p.price, p.stock_quantity, ci.quantity, ci.created_at").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.cart_id = ?", cartID).
		Order("ci.created_at asc").Order("ci.id asc").
		Scan(&lines).Error
	if err != nil {
		return []model.CartLine{}, err
	}
	if lines == nil {
		lines = []model.CartLine{}
	}
	return lines, nil
}

// upsertActiveSQL inserts only while the cart row is ACTIVE. FOR SHARE waits
// on a checkout holding the cart lock and then rechecks the status.
const upsertActiveSQL = `
INSERT INTO cart_items (cart_id, product_id, quantity, created_at, updated_at)
SELECT c.id, ?, ?, NOW(), NOW()
FROM carts c
WHERE c.id = ? AND c.status = ?
FOR SHARE
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()`

// Upsert adds addQty in a single statement, so concurrent adds for the same
// product sum instead of overwriting each other. ErrCartNotActive when the
// cart was checked out first.
func (r *CartItemGormRepository) Upsert(ctx context.Context, cartID int64, productID int64, addQty int64) error {
	res := r.db.WithContext(ctx).Exec(upsertActiveSQL, productID, addQty, cartID, model.CartStatusActive)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrCartNotActive
	}
	return nil
}

// QuantityOf returns 0 when the product is not in the cart.
func (r *CartItemGormRepository) QuantityOf(ctx context.Context, cartID int64, productID int64) (int64, error) {
	var qty int64
	err := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Scan(&qty).Error
	return qty, err
}

func (r *CartItemGormRepository) UpdateQuantityOwned(ctx context.Context, userID int64, itemID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ? AND cart_id IN (?)", itemID, r.ownedActiveCart(userID)).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartItemGormRepository) DeleteOwned(ctx context.Context, userID int64, itemID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND cart_id IN (?)", itemID, r.ownedActiveCart(userID)).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ClearActive is a no-op when the user has no ACTIVE cart.
func (r *CartItemGormRepository) ClearActive(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("cart_id IN (?)", r.ownedActiveCart(userID)).
		Delete(&model.CartItem{}).Error
}

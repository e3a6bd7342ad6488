package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// active products, ordered by name
func (r *ProductGormRepository) ListActive(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name asc").Order("id asc").
		Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

func (r *ProductGormRepository) FindActiveByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&p).Error
	if isNotFound(err) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if isNotFound(err) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Update writes only the columns present in patch.
func (r *ProductGormRepository) Update(ctx context.Context, id int64, patch model.ProductPatch) (model.Product, error) {
	cols := map[string]interface{}{}
	if patch.Name != nil {
		cols["name"] = *patch.Name
	}
	if patch.Description != nil {
		cols["description"] = *patch.Description
	}
	if patch.Price != nil {
		cols["price"] = *patch.Price
	}
	switch {
	case patch.ClearStock:
		cols["stock_quantity"] = nil
	case patch.StockQuantity != nil:
		cols["stock_quantity"] = *patch.StockQuantity
	}
	if patch.IsActive != nil {
		cols["is_active"] = *patch.IsActive
	}
	if len(cols) == 0 {
		return r.FindByID(ctx, id)
	}

	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return model.Product{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Product{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// No hard delete; the row stays for order history.
func (r *ProductGormRepository) Deactivate(ctx context.Context, id int64) (model.Product, error) {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return model.Product{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Product{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// Rows are locked in ascending id order so concurrent checkouts never deadlock.
func (r *ProductGormRepository) LockByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	var products []model.Product
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id asc").
		Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) FindByIDForUser(ctx context.Context, userID int64, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error
	if isNotFound(err) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) withOwner(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("orders").
		Select("orders.*, users.email").
		Joins("JOIN users ON users.id = orders.user_id")
}

func (r *OrderGormRepository) ListAllWithOwner(ctx context.Context) ([]model.OrderWithOwner, error) {
	var rows []model.OrderWithOwner
	if err := r.withOwner(ctx).
		Order("orders.created_at desc").Order("orders.id desc").
		Scan(&rows).Error; err != nil {
		return []model.OrderWithOwner{}, err
	}
	if rows == nil {
		rows = []model.OrderWithOwner{}
	}
	return rows, nil
}

func (r *OrderGormRepository) FindByIDWithOwner(ctx context.Context, orderID int64) (model.OrderWithOwner, error) {
	var rows []model.OrderWithOwner
	if err := r.withOwner(ctx).
		Where("orders.id = ?", orderID).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return model.OrderWithOwner{}, err
	}
	if len(rows) == 0 {
		return model.OrderWithOwner{}, repo.ErrNotFound
	}
	return rows[0], nil
}

func (r *OrderGormRepository) LockByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", orderID).
		First(&o).Error
	if isNotFound(err) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (model.Order, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return model.Order{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Order{}, repo.ErrNotFound
	}

	var o model.Order
	if err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error; err != nil {
		return model.Order{}, err
	}
	return o, nil
}

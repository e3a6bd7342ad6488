package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// activeCartTarget matches the predicate of ux_carts_active_user. It must be a
// literal: ON CONFLICT inference cannot prove a bound parameter.
var activeCartTarget = clause.Where{Exprs: []clause.Expression{
	clause.Expr{SQL: "status = 'active'"},
}}

// GetOrCreateActive inserts an ACTIVE cart unless one exists, then reads it back.
// Two racing callers both land on the single row the partial index allows.
func (r *CartGormRepository) GetOrCreateActive(ctx context.Context, userID int64) (model.Cart, error) {
	db := r.db.WithContext(ctx)

	newCart := model.Cart{UserID: userID, Status: model.CartStatusActive}
	if err := db.Clauses(clause.OnConflict{
		Columns:     []clause.Column{{Name: "user_id"}},
		TargetWhere: activeCartTarget,
		DoNothing:   true,
	}).Create(&newCart).Error; err != nil {
		return model.Cart{}, err
	}

	return r.FindActiveByUserID(ctx, userID)
}

func (r *CartGormRepository) FindActiveByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.CartStatusActive).
		First(&cart).Error

	if isNotFound(err) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

func (r *CartGormRepository) LockByID(ctx context.Context, cartID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", cartID).
		First(&cart).Error

	if isNotFound(err) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// UpdateStatus is a compare-and-set on carts.status.
func (r *CartGormRepository) UpdateStatus(ctx context.Context, cartID int64, from model.CartStatus, to model.CartStatus) error {
	if !from.CanTransitionTo(to) {
		return &model.ErrIllegalCartTransition{From: from, To: to}
	}

	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ? AND status = ?", cartID, from).
		Update("status", to)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrCartNotActive
	}
	return nil
}

package repository

import (
	"context"

	"storefront/internal/domain/model"
	domainrepo "storefront/internal/repository"

	"gorm.io/gorm"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
func NewUserGormRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return domainrepo.ErrConflict
		}
		return err
	}
	return nil
}

// email is compared case-insensitively; ux_users_email_lower backs it.
func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("lower(email) = ?", model.NormalizeEmail(email)).
		First(&u).Error
	if isNotFound(err) {
		return model.User{}, domainrepo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *userGormRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if isNotFound(err) {
		return model.User{}, domainrepo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *userGormRepository) UpdateEmail(ctx context.Context, id int64, email string) (model.User, error) {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("email", email)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return model.User{}, domainrepo.ErrConflict
		}
		return model.User{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.User{}, domainrepo.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// Deactivate keeps the row; orders still reference it.
func (r *userGormRepository) Deactivate(ctx context.Context, id int64) (model.User, error) {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return model.User{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.User{}, domainrepo.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

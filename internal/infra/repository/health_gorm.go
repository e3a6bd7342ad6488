package repository

import (
	"context"
	"time"

	domainrepo "storefront/internal/repository"

	"gorm.io/gorm"
)

type healthGormRepository struct {
	db *gorm.DB
}

func NewHealthGormRepository(db *gorm.DB) domainrepo.HealthRepository {
	return &healthGormRepository{db: db}
}

func (r *healthGormRepository) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := r.db.WithContext(ctx).Raw("SELECT NOW()").Scan(&now).Error; err != nil {
		return time.Time{}, err
	}
	return now, nil
}

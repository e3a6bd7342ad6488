package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type OutboxGormRepository struct {
	db *gorm.DB
}

func NewOutboxGormRepository(db *gorm.DB) *OutboxGormRepository {
	return &OutboxGormRepository{db: db}
}

func (r *OutboxGormRepository) Insert(ctx context.Context, event model.OutboxEvent) error {
	return r.db.WithContext(ctx).Create(&event).Error
}

// FetchPending returns unsent events in insertion order.
func (r *OutboxGormRepository) FetchPending(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	var events []model.OutboxEvent
	if err := r.db.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("id asc").
		Limit(limit).
		Find(&events).Error; err != nil {
		return []model.OutboxEvent{}, err
	}
	return events, nil
}

func (r *OutboxGormRepository) MarkSent(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.OutboxEvent{}).
		Where("id = ? AND sent_at IS NULL", id).
		Update("sent_at", gorm.Expr("NOW()"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

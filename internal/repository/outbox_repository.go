package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type OutboxRepository interface {
	Insert(ctx context.Context, event model.OutboxEvent) error
	FetchPending(ctx context.Context, limit int) ([]model.OutboxEvent, error)
	MarkSent(ctx context.Context, id int64) error
}

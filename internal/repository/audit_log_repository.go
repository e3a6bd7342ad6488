package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

// Zero-value fields are not filtered on.
type AuditLogFilter struct {
	ActorUserID  *int64
	Action       *model.AuditAction
	ResourceType *model.AuditResourceType
	ResourceID   *int64
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	// newest first
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}

package usecase

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type AuditUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAuditUsecase(auditRepo repo.AuditLogRepository) *AuditUsecase {
	return &AuditUsecase{auditRepo: auditRepo}
}

func (u *AuditUsecase) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	if f.Action != nil && !f.Action.Valid() {
		return nil, Validation("Invalid action", FieldError{Field: "action", Message: "unknown audit action"})
	}
	if f.ResourceType != nil && !f.ResourceType.Valid() {
		return nil, Validation("Invalid resource_type", FieldError{Field: "resource_type", Message: "must be product or order"})
	}
	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return nil, Internal("list audit logs", err)
	}
	return logs, nil
}

package model

import "time"

type AuditAction string

const (
	AuditActionCreateProduct     AuditAction = "CREATE_PRODUCT"
	AuditActionUpdateProduct     AuditAction = "UPDATE_PRODUCT"
	AuditActionDeactivateProduct AuditAction = "DEACTIVATE_PRODUCT"
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
)

type AuditResourceType string

const (
	AuditResourceProduct AuditResourceType = "product"
	AuditResourceOrder   AuditResourceType = "order"
)

// AuditLog records who changed what on admin surfaces.
type AuditLog struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID  int64             `gorm:"not null;index" json:"actor_user_id"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`
	BeforeJSON   string            `gorm:"type:text" json:"before_json"`
	AfterJSON    string            `gorm:"type:text" json:"after_json"`
	CreatedAt    time.Time         `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

func (a AuditAction) Valid() bool {
	switch a {
	case AuditActionCreateProduct, AuditActionUpdateProduct, AuditActionDeactivateProduct, AuditActionUpdateOrderStatus:
		return true
	}
	return false
}

func (t AuditResourceType) Valid() bool {
	return t == AuditResourceProduct || t == AuditResourceOrder
}

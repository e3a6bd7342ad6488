package model

import "time"

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OutboxEvent is written in the same transaction as the change it describes.
type OutboxEvent struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID   string     `gorm:"type:uuid;not null;uniqueIndex" json:"event_id"`
	Type      string     `gorm:"type:varchar(100);not null" json:"type"`
	Key       string     `gorm:"type:varchar(100);not null" json:"key"`
	Payload   string     `gorm:"type:jsonb;not null" json:"payload"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	SentAt    *time.Time `gorm:"index" json:"sent_at"`
}

package model

import (
	"fmt"
	"time"
)

type CartStatus string

const (
	CartStatusActive     CartStatus = "active"
	CartStatusCheckedOut CartStatus = "checked_out"
)

// ErrIllegalCartTransition is returned for any transition other than active -> checked_out.
type ErrIllegalCartTransition struct {
	From CartStatus
	To   CartStatus
}

func (e *ErrIllegalCartTransition) Error() string {
	return fmt.Sprintf("illegal cart transition %s -> %s", e.From, e.To)
}

// CanTransitionTo is the whole cart state machine.
func (s CartStatus) CanTransitionTo(next CartStatus) bool {
	return s == CartStatusActive && next == CartStatusCheckedOut
}

// At most one ACTIVE cart per user (partial unique index ux_carts_active_user).
type Cart struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64      `gorm:"not null;index" json:"user_id"`
	Status    CartStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (c *Cart) TransitionTo(next CartStatus) error {
	if !c.Status.CanTransitionTo(next) {
		return &ErrIllegalCartTransition{From: c.Status, To: next}
	}
	c.Status = next
	return nil
}

package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type UserRepository interface {
	// Create returns ErrConflict on duplicate email.
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	// active users only; ErrConflict on duplicate email
	UpdateEmail(ctx context.Context, userID int64, email string) (model.User, error)
	Deactivate(ctx context.Context, userID int64) (model.User, error)
}

package usecase

import (
	"context"
	"errors"
	"net/mail"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// UserUsecase is the self-service profile surface behind /users/me.
type UserUsecase struct {
	users repo.UserRepository
}

func NewUserUsecase(users repo.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

func (u *UserUsecase) Me(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, Unauthenticated("Unauthorized")
	}
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && !user.IsActive) {
		return model.User{}, NotFound("User not found")
	}
	if err != nil {
		return model.User{}, Internal("find user", err)
	}
	return user, nil
}

func (u *UserUsecase) UpdateEmail(ctx context.Context, userID int64, email string) (model.User, error) {
	if userID <= 0 {
		return model.User{}, Unauthenticated("Unauthorized")
	}
	email = model.NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return model.User{}, Validation("Invalid request data", FieldError{Field: "email", Message: "Email must be a valid email address"})
	}

	user, err := u.users.UpdateEmail(ctx, userID, email)
	switch {
	case errors.Is(err, repo.ErrConflict):
		return model.User{}, Conflict("Email already exists")
	case errors.Is(err, repo.ErrNotFound):
		return model.User{}, NotFound("User not found")
	case err != nil:
		return model.User{}, Internal("update email", err)
	}
	return user, nil
}

// Deactivate soft-deletes the caller; the row and their orders stay.
func (u *UserUsecase) Deactivate(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, Unauthenticated("Unauthorized")
	}
	user, err := u.users.Deactivate(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.User{}, NotFound("User not found or already inactive")
	}
	if err != nil {
		return model.User{}, Internal("deactivate user", err)
	}
	return user, nil
}

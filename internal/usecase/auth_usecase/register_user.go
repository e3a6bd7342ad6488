package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/usecase"
)

const minPasswordLength = 8

type RegisterUserInput struct {
	Email    string
	Password string
}

type RegisterUserOutput struct {
	User model.User `json:"user"`
}

// PasswordHasher turns a plain password into a stored hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

// DI
func NewRegisterUserUsecase(userRepo repository.UserRepository, hasher PasswordHasher) *RegisterUserUsecase {
	return &RegisterUserUsecase{userRepo: userRepo, hasher: hasher}
}

// Execute creates a customer. The unique index decides duplicates, so two
// racing registrations for one address cannot both succeed.
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	email := model.NormalizeEmail(in.Email)
	var fields []usecase.FieldError
	if !isValidEmailFormat(email) {
		fields = append(fields, usecase.FieldError{Field: "email", Message: "Email must be a valid email address"})
	}
	if len(in.Password) < minPasswordLength {
		fields = append(fields, usecase.FieldError{Field: "password", Message: "Password must be at least 8 characters long"})
	}
	if len(fields) > 0 {
		return out, usecase.Validation("Invalid request data", fields...)
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, usecase.Internal("hash password", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleCustomer,
		IsActive:     true,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return out, usecase.Conflict("Email already exists")
		}
		return out, usecase.Internal("create user", err)
	}

	out.User = *user
	return out, nil
}

func isValidEmailFormat(email string) bool {
	if strings.TrimSpace(email) == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

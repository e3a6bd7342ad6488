package auth

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/usecase"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// AccessTokenIssuer signs a bearer token for a user.
type AccessTokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

// PasswordVerifier compares a plain password with a stored hash.
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

// Execute answers unknown email, wrong password and deactivated account with
// the same 401.
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	email := model.NormalizeEmail(in.Email)
	var fields []usecase.FieldError
	if !isValidEmailFormat(email) {
		fields = append(fields, usecase.FieldError{Field: "email", Message: "Email must be a valid email address"})
	}
	if in.Password == "" {
		fields = append(fields, usecase.FieldError{Field: "password", Message: "Password required"})
	}
	if len(fields) > 0 {
		return out, usecase.Validation("Invalid request data", fields...)
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return out, usecase.Unauthenticated("Invalid email or password")
	}
	if err != nil {
		return out, usecase.Internal("find user", err)
	}
	if !user.IsActive {
		return out, usecase.Unauthenticated("Invalid email or password")
	}
	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return out, usecase.Unauthenticated("Invalid email or password")
	}

	token, _, err := u.issuer.Issue(user.ID, user.Role, u.clock.Now())
	if err != nil {
		return out, usecase.Internal("issue token", err)
	}

	out.Token = token
	out.User = user
	return out, nil
}

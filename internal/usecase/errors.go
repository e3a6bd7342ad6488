package usecase

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation      ErrorKind = "VALIDATION"
	KindUnauthenticated ErrorKind = "UNAUTHENTICATED"
	KindForbidden       ErrorKind = "FORBIDDEN"
	KindNotFound        ErrorKind = "NOT_FOUND"
	KindConflict        ErrorKind = "CONFLICT"
	KindDomain          ErrorKind = "DOMAIN"
	KindInternal        ErrorKind = "INTERNAL"
)

// DomainCode names a business-rule rejection.
type DomainCode string

const (
	CodeEmptyCart         DomainCode = "EMPTY_CART"
	CodeInsufficientStock DomainCode = "INSUFFICIENT_STOCK"
	CodeInactiveProduct   DomainCode = "INACTIVE_PRODUCT"
	CodeProductNotFound   DomainCode = "PRODUCT_NOT_FOUND"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the typed outcome every usecase returns on failure.
type AppError struct {
	Kind    ErrorKind
	Code    DomainCode
	Message string
	Errors  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	s := string(e.Kind)
	if e.Code != "" {
		s += "/" + string(e.Code)
	}
	s += ": " + e.Message
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *AppError) Unwrap() error { return e.Err }

func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}

// KindOf returns KindInternal for anything that is not an AppError.
func KindOf(err error) ErrorKind {
	if ae, ok := AsAppError(err); ok {
		return ae.Kind
	}
	return KindInternal
}

// CodeOf returns the domain code of err, or "".
func CodeOf(err error) DomainCode {
	if ae, ok := AsAppError(err); ok {
		return ae.Code
	}
	return ""
}

func Validation(message string, fields ...FieldError) error {
	return &AppError{Kind: KindValidation, Message: message, Errors: fields}
}

func Unauthenticated(message string) error {
	return &AppError{Kind: KindUnauthenticated, Message: message}
}

func Forbidden(message string) error {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NotFound(message string) error {
	return &AppError{Kind: KindNotFound, Message: message}
}

func Conflict(message string) error {
	return &AppError{Kind: KindConflict, Message: message}
}

func Domain(code DomainCode, message string) error {
	return &AppError{Kind: KindDomain, Code: code, Message: message}
}

// Internal keeps the cause for server-side logs; callers see only "Server error".
func Internal(op string, err error) error {
	return &AppError{Kind: KindInternal, Message: "Server error", Err: fmt.Errorf("%s: %w", op, err)}
}

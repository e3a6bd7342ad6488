package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"storefront/internal/usecase"

	playground "github.com/go-playground/validator/v10"
)

// RequestValidator is registered as echo's Validator so handlers can call
// c.Validate on bound request bodies.
type RequestValidator struct {
	v *playground.Validate
}

func New() *RequestValidator {
	v := playground.New()
	// report json names, not Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &RequestValidator{v: v}
}

// Validate returns a usecase validation error carrying one entry per failed field.
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return usecase.Validation("Invalid request data")
	}
	fields := make([]usecase.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, usecase.FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return usecase.Validation("Invalid request data", fields...)
}

func messageFor(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Email must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be %s characters or less", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/logging"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Message string               `json:"message"`
	Code    usecase.DomainCode   `json:"code,omitempty"`
	Errors  []usecase.FieldError `json:"errors,omitempty"`
}

// Guards are the middleware chains routes are mounted behind.
type Guards struct {
	Caller []echo.MiddlewareFunc // AuthJWT + ActiveUserGuard
	Admin  []echo.MiddlewareFunc // Caller + AdminRoleGuard
}

// writeError maps a usecase error to its status and envelope. Internal causes
// are logged with the request id and never sent to the caller.
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	ae, ok := usecase.AsAppError(err)
	if !ok || ae.Kind == usecase.KindInternal {
		userID, _ := getUserIDFromContext(c)
		c.Logger().Errorj(logging.Fields{
			RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
			UserID:    userID,
			Step:      c.Request().Method + " " + c.Path(),
			Error:     err,
		}.JSON())
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Server error"})
	}

	return c.JSON(statusOf(ae), ErrorResponse{
		Message: ae.Message,
		Code:    ae.Code,
		Errors:  ae.Errors,
	})
}

func statusOf(ae *usecase.AppError) int {
	switch ae.Kind {
	case usecase.KindValidation:
		return http.StatusBadRequest
	case usecase.KindUnauthenticated:
		return http.StatusUnauthorized
	case usecase.KindForbidden:
		return http.StatusForbidden
	case usecase.KindNotFound:
		return http.StatusNotFound
	case usecase.KindConflict:
		return http.StatusConflict
	case usecase.KindDomain:
		if ae.Code == usecase.CodeProductNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// bindAndValidate decodes the body into req and runs its validate tags.
// Malformed JSON is reported as a plain validation error.
func bindAndValidate(c echo.Context, req interface{}, message string) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
			return usecase.Validation(message)
		}
		return err
	}
	if err := c.Validate(req); err != nil {
		if ae, ok := usecase.AsAppError(err); ok {
			return usecase.Validation(message, ae.Errors...)
		}
		return err
	}
	return nil
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	id, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c echo.Context, name string, message string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, usecase.Validation(message, usecase.FieldError{Field: name, Message: "must be a positive integer"})
	}
	return id, nil
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
}

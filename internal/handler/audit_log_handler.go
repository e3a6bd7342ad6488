package handler

import (
	"net/http"
	"strconv"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// GET /admin/audit-logs
type AuditLogHandler struct {
	uc *usecase.AuditUsecase
}

func NewAuditLogHandler(uc *usecase.AuditUsecase) *AuditLogHandler {
	return &AuditLogHandler{uc: uc}
}

type auditLogsResponse struct {
	AuditLogs []model.AuditLog `json:"audit_logs"`
}

func (h *AuditLogHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	e.GET("/admin/audit-logs", h.list, g.Admin...)
}

func (h *AuditLogHandler) list(c echo.Context) error {
	var f repository.AuditLogFilter
	var fields []usecase.FieldError

	if v := c.QueryParam("action"); v != "" {
		a := model.AuditAction(v)
		f.Action = &a
	}
	if v := c.QueryParam("resource_type"); v != "" {
		rt := model.AuditResourceType(v)
		f.ResourceType = &rt
	}
	if v := c.QueryParam("resource_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			fields = append(fields, usecase.FieldError{Field: "resource_id", Message: "must be a positive integer"})
		} else {
			f.ResourceID = &id
		}
	}
	if v := c.QueryParam("actor_user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			fields = append(fields, usecase.FieldError{Field: "actor_user_id", Message: "must be a positive integer"})
		} else {
			f.ActorUserID = &id
		}
	}
	if v := c.QueryParam("from"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			fields = append(fields, usecase.FieldError{Field: "from", Message: "must be RFC3339"})
		} else {
			f.CreatedFrom = &tm
		}
	}
	if v := c.QueryParam("to"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			fields = append(fields, usecase.FieldError{Field: "to", Message: "must be RFC3339"})
		} else {
			f.CreatedTo = &tm
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			fields = append(fields, usecase.FieldError{Field: "limit", Message: "must be a positive integer"})
		} else {
			f.Limit = n
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			fields = append(fields, usecase.FieldError{Field: "offset", Message: "must be zero or more"})
		} else {
			f.Offset = n
		}
	}
	if len(fields) > 0 {
		return writeError(c, usecase.Validation("Invalid query", fields...))
	}

	logs, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, auditLogsResponse{AuditLogs: logs})
}

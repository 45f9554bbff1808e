package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/dto"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/middleware"
)

const defaultPageLimit = 20

// parseListParams extracts the limit and nextToken pagination query params.
func parseListParams(c *gin.Context) (int, *string) {
	limit := defaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	var nextToken *string
	if raw := c.Query("nextToken"); raw != "" {
		nextToken = &raw
	}
	return limit, nextToken
}

// respondChangeStatus writes the outcome of a status change attempt.
func respondChangeStatus(c *gin.Context, result *portssvc.ChangeStatusResult) {
	resp := dto.ChangeStatusResponse{Outcome: string(result.Outcome)}
	if result.Document != nil {
		doc := dto.ToDocumentResponse(*result.Document)
		resp.Document = &doc
	}
	if result.Request != nil {
		req := dto.ToAuthorizationRequestResponse(*result.Request)
		resp.Request = &req
	}
	status := http.StatusOK
	if result.Request != nil {
		// A deferred transition created an authorization request.
		status = http.StatusAccepted
	}
	c.JSON(status, resp)
}

// respondChangeStatusError maps a status change failure to an HTTP response.
func respondChangeStatusError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
	case errors.Is(err, apperrors.ErrIllegalTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Document already has a pending authorization request"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Document was modified concurrently, retry with fresh state"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to change document status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change document status"})
	}
}

// historyHandler serves the audit trail shared by every document module.
func historyHandler(auditService portssvc.AuditSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		recordID := c.Param("id")

		history, err := auditService.HistoryFor(c.Request.Context(), recordID)
		if err != nil {
			logger.Error("Failed to load audit history", slog.String("error", err.Error()), slog.String("record_id", recordID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
			return
		}

		entries := make([]dto.AuditEntryResponse, len(history))
		for i, entry := range history {
			entries[i] = dto.ToAuditEntryResponse(entry)
		}
		c.JSON(http.StatusOK, gin.H{"history": entries})
	}
}

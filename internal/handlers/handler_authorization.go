package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/dto"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/middleware"
)

// authorizationHandler handles HTTP requests related to authorization requests.
type authorizationHandler struct {
	authorizationService portssvc.AuthorizationSvcFacade
	capabilityService    portssvc.CapabilitySvcFacade
}

// newAuthorizationHandler creates a new authorizationHandler.
func newAuthorizationHandler(as portssvc.AuthorizationSvcFacade, cs portssvc.CapabilitySvcFacade) *authorizationHandler {
	return &authorizationHandler{
		authorizationService: as,
		capabilityService:    cs,
	}
}

// registerAuthorizationRoutes registers routes related to authorization requests.
func registerAuthorizationRoutes(rg *gin.RouterGroup, authorizationService portssvc.AuthorizationSvcFacade, capabilityService portssvc.CapabilitySvcFacade) {
	h := newAuthorizationHandler(authorizationService, capabilityService)

	requests := rg.Group("/authorization-requests")
	{
		requests.GET("/pending", h.listPending)
		requests.POST("/:id/approve", h.approve)
		requests.POST("/:id/reject", h.reject)
	}
}

// requireReviewCapability resolves the actor and checks the review capability.
// Returns the actor ID and false when the request was already answered.
func (h *authorizationHandler) requireReviewCapability(c *gin.Context) (string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}

	allowed, err := h.capabilityService.ActorHasCapability(c.Request.Context(), actorID, domain.CapabilityReviewRequests)
	if err != nil {
		logger.Error("Failed to check review capability", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check permissions"})
		return "", false
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Reviewing authorization requests requires " + domain.CapabilityReviewRequests})
		return "", false
	}
	return actorID, true
}

// listPending godoc
// @Summary List pending authorization requests
// @Description Returns unresolved requests, oldest first
// @Tags authorization-requests
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.AuthorizationRequestResponse
// @Failure 403 {object} map[string]string "Capability required"
// @Failure 500 {object} map[string]string "Failed to list requests"
// @Security BearerAuth
// @Router /authorization-requests/pending [get]
func (h *authorizationHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if _, ok := h.requireReviewCapability(c); !ok {
		return
	}

	limit := defaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	requests, err := h.authorizationService.ListPending(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list pending authorization requests", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list requests"})
		return
	}

	resp := make([]dto.AuthorizationRequestResponse, len(requests))
	for i, request := range requests {
		resp[i] = dto.ToAuthorizationRequestResponse(request)
	}
	c.JSON(http.StatusOK, resp)
}

// approve godoc
// @Summary Approve a pending authorization request
// @Description Resolves the request and applies the deferred transition
// @Tags authorization-requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Request ID"
// @Param   review body dto.ReviewRequest false "Review notes"
// @Success 200 {object} dto.AuthorizationRequestResponse
// @Failure 403 {object} map[string]string "Capability required"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Request already resolved or document state changed"
// @Security BearerAuth
// @Router /authorization-requests/{id}/approve [post]
func (h *authorizationHandler) approve(c *gin.Context) {
	h.review(c, h.authorizationService.Approve)
}

// reject godoc
// @Summary Reject a pending authorization request
// @Description Resolves the request without touching the document
// @Tags authorization-requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Request ID"
// @Param   review body dto.ReviewRequest false "Review notes"
// @Success 200 {object} dto.AuthorizationRequestResponse
// @Failure 403 {object} map[string]string "Capability required"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Request already resolved"
// @Security BearerAuth
// @Router /authorization-requests/{id}/reject [post]
func (h *authorizationHandler) reject(c *gin.Context) {
	h.review(c, h.authorizationService.Reject)
}

type reviewFunc func(ctx context.Context, requestID, reviewedBy string, notes *string) (*domain.AuthorizationRequest, error)

func (h *authorizationHandler) review(c *gin.Context, decide reviewFunc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := h.requireReviewCapability(c)
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for review", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	request, err := decide(c.Request.Context(), c.Param("id"), actorID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Authorization request not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to resolve authorization request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve request"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthorizationRequestResponse(*request))
}

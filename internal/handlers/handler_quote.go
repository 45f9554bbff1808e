package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/dto"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/middleware"
)

// quoteHandler handles HTTP requests related to quotes.
type quoteHandler struct {
	quoteService portssvc.QuoteSvcFacade
}

// newQuoteHandler creates a new quoteHandler.
func newQuoteHandler(qs portssvc.QuoteSvcFacade) *quoteHandler {
	return &quoteHandler{
		quoteService: qs,
	}
}

// registerQuoteRoutes registers routes related to quotes.
func registerQuoteRoutes(rg *gin.RouterGroup, quoteService portssvc.QuoteSvcFacade, auditService portssvc.AuditSvcFacade) {
	h := newQuoteHandler(quoteService)

	quotes := rg.Group("/quotes")
	{
		quotes.POST("", h.createQuote)
		quotes.GET("", h.listQuotes)
		quotes.GET("/:id", h.getQuote)
		quotes.POST("/:id/status", h.changeQuoteStatus)
		quotes.DELETE("/:id", h.deleteQuote)
		quotes.POST("/:id/convert", h.convertQuote)
		quotes.GET("/:id/history", historyHandler(auditService))
	}
}

// createQuote godoc
// @Summary Create a quote
// @Description Creates a quote in DRAFT with a server-allocated COT number
// @Tags quotes
// @Accept  json
// @Produce  json
// @Param   quote body dto.CreateQuoteRequest true "Quote details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create quote"
// @Security BearerAuth
// @Router /quotes [post]
func (h *quoteHandler) createQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateQuote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.quoteService.CreateQuote(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create quote in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quote"})
		}
		return
	}

	logger.Info("Quote created", slog.String("document_id", doc.DocumentID), slog.String("number", doc.Number))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(*doc))
}

// getQuote godoc
// @Summary Get a quote
// @Tags quotes
// @Produce  json
// @Param   id path string true "Quote ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} map[string]string "Quote not found"
// @Security BearerAuth
// @Router /quotes/{id} [get]
func (h *quoteHandler) getQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	doc, err := h.quoteService.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		} else {
			logger.Error("Failed to get quote from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve quote"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(*doc))
}

// listQuotes godoc
// @Summary List quotes
// @Tags quotes
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 500 {object} map[string]string "Failed to list quotes"
// @Security BearerAuth
// @Router /quotes [get]
func (h *quoteHandler) listQuotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, nextToken := parseListParams(c)

	docs, next, err := h.quoteService.ListQuotes(c.Request.Context(), limit, nextToken)
	if err != nil {
		logger.Error("Failed to list quotes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list quotes"})
		return
	}

	resp := dto.ListDocumentsResponse{Documents: make([]dto.DocumentResponse, len(docs)), NextToken: next}
	for i, doc := range docs {
		resp.Documents[i] = dto.ToDocumentResponse(doc)
	}
	c.JSON(http.StatusOK, resp)
}

// changeQuoteStatus godoc
// @Summary Change a quote's status
// @Tags quotes
// @Accept  json
// @Produce  json
// @Param   id path string true "Quote ID"
// @Param   change body dto.ChangeStatusRequest true "Requested status"
// @Success 200 {object} dto.ChangeStatusResponse "Transition applied"
// @Success 202 {object} dto.ChangeStatusResponse "Transition deferred for approval"
// @Failure 403 {object} map[string]string "Capability required"
// @Failure 404 {object} map[string]string "Quote not found"
// @Failure 422 {object} map[string]string "Illegal transition"
// @Security BearerAuth
// @Router /quotes/{id}/status [post]
func (h *quoteHandler) changeQuoteStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangeQuoteStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.quoteService.ChangeQuoteStatus(c.Request.Context(), c.Param("id"), domain.DocumentStatus(req.Status), req.Reason, actorID)
	if err != nil {
		respondChangeStatusError(c, err)
		return
	}
	respondChangeStatus(c, result)
}

// deleteQuote godoc
// @Summary Delete a quote
// @Description Removes a quote still in DRAFT
// @Tags quotes
// @Produce  json
// @Param   id path string true "Quote ID"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Quote already advanced"
// @Failure 404 {object} map[string]string "Quote not found"
// @Security BearerAuth
// @Router /quotes/{id} [delete]
func (h *quoteHandler) deleteQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), c.Param("id"), actorID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Quote was modified concurrently"})
		default:
			logger.Error("Failed to delete quote", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete quote"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// convertQuote godoc
// @Summary Convert an accepted quote into a production order
// @Description Allocates a new OP number for the order and moves the quote to CONVERTED
// @Tags quotes
// @Produce  json
// @Param   id path string true "Quote ID"
// @Success 201 {object} dto.DocumentResponse "The created order"
// @Failure 400 {object} map[string]string "Quote is not ACCEPTED"
// @Failure 404 {object} map[string]string "Quote not found"
// @Failure 409 {object} map[string]string "Quote was modified concurrently"
// @Security BearerAuth
// @Router /quotes/{id}/convert [post]
func (h *quoteHandler) convertQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.quoteService.ConvertQuote(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Quote was modified concurrently"})
		default:
			logger.Error("Failed to convert quote", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert quote"})
		}
		return
	}

	logger.Info("Quote converted", slog.String("quote_id", c.Param("id")), slog.String("order_id", order.DocumentID))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(*order))
}

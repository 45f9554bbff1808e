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

// expenseOrderHandler handles HTTP requests related to expense orders.
type expenseOrderHandler struct {
	expenseOrderService portssvc.ExpenseOrderSvcFacade
}

// newExpenseOrderHandler creates a new expenseOrderHandler.
func newExpenseOrderHandler(es portssvc.ExpenseOrderSvcFacade) *expenseOrderHandler {
	return &expenseOrderHandler{
		expenseOrderService: es,
	}
}

// RegisterExpenseOrderRoutes registers routes related to expense orders.
func RegisterExpenseOrderRoutes(rg *gin.RouterGroup, expenseOrderService portssvc.ExpenseOrderSvcFacade, auditService portssvc.AuditSvcFacade) {
	h := newExpenseOrderHandler(expenseOrderService)

	expenseOrders := rg.Group("/expense-orders")
	{
		expenseOrders.POST("", h.createExpenseOrder)
		expenseOrders.GET("", h.listExpenseOrders)
		expenseOrders.GET("/:id", h.getExpenseOrder)
		expenseOrders.POST("/:id/status", h.changeExpenseOrderStatus)
		expenseOrders.DELETE("/:id", h.deleteExpenseOrder)
		expenseOrders.GET("/:id/history", historyHandler(auditService))
	}
}

// createExpenseOrder godoc
// @Summary Create an expense order
// @Description Creates an expense order in DRAFT with a server-allocated OG number
// @Tags expense-orders
// @Accept  json
// @Produce  json
// @Param   expenseOrder body dto.CreateExpenseOrderRequest true "Expense order details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create expense order"
// @Security BearerAuth
// @Router /expense-orders [post]
func (h *expenseOrderHandler) createExpenseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExpenseOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.expenseOrderService.CreateExpenseOrder(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create expense order in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense order"})
		}
		return
	}

	logger.Info("Expense order created", slog.String("document_id", doc.DocumentID), slog.String("number", doc.Number))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(*doc))
}

// getExpenseOrder godoc
// @Summary Get an expense order
// @Tags expense-orders
// @Produce  json
// @Param   id path string true "Expense order ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} map[string]string "Expense order not found"
// @Security BearerAuth
// @Router /expense-orders/{id} [get]
func (h *expenseOrderHandler) getExpenseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	doc, err := h.expenseOrderService.GetExpenseOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense order not found"})
		} else {
			logger.Error("Failed to get expense order from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve expense order"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(*doc))
}

// listExpenseOrders godoc
// @Summary List expense orders
// @Tags expense-orders
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 500 {object} map[string]string "Failed to list expense orders"
// @Security BearerAuth
// @Router /expense-orders [get]
func (h *expenseOrderHandler) listExpenseOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, nextToken := parseListParams(c)

	docs, next, err := h.expenseOrderService.ListExpenseOrders(c.Request.Context(), limit, nextToken)
	if err != nil {
		logger.Error("Failed to list expense orders", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list expense orders"})
		return
	}

	resp := dto.ListDocumentsResponse{Documents: make([]dto.DocumentResponse, len(docs)), NextToken: next}
	for i, doc := range docs {
		resp.Documents[i] = dto.ToDocumentResponse(doc)
	}
	c.JSON(http.StatusOK, resp)
}

// changeExpenseOrderStatus godoc
// @Summary Change an expense order's status
// @Description AUTHORIZED requires expense_orders:approve (deferrable); PAID requires expense_orders:pay (not deferrable)
// @Tags expense-orders
// @Accept  json
// @Produce  json
// @Param   id path string true "Expense order ID"
// @Param   change body dto.ChangeStatusRequest true "Requested status"
// @Success 200 {object} dto.ChangeStatusResponse "Transition applied"
// @Success 202 {object} dto.ChangeStatusResponse "Transition deferred for approval"
// @Failure 403 {object} map[string]string "Capability required"
// @Failure 404 {object} map[string]string "Expense order not found"
// @Failure 409 {object} map[string]string "Concurrent modification or duplicate pending request"
// @Failure 422 {object} map[string]string "Illegal transition"
// @Security BearerAuth
// @Router /expense-orders/{id}/status [post]
func (h *expenseOrderHandler) changeExpenseOrderStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangeExpenseOrderStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.expenseOrderService.ChangeExpenseOrderStatus(c.Request.Context(), c.Param("id"), domain.DocumentStatus(req.Status), req.Reason, actorID)
	if err != nil {
		respondChangeStatusError(c, err)
		return
	}
	respondChangeStatus(c, result)
}

// deleteExpenseOrder godoc
// @Summary Delete an expense order
// @Description Removes an expense order still in DRAFT
// @Tags expense-orders
// @Produce  json
// @Param   id path string true "Expense order ID"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Expense order already advanced"
// @Failure 404 {object} map[string]string "Expense order not found"
// @Security BearerAuth
// @Router /expense-orders/{id} [delete]
func (h *expenseOrderHandler) deleteExpenseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.expenseOrderService.DeleteExpenseOrder(c.Request.Context(), c.Param("id"), actorID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense order not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Expense order was modified concurrently"})
		default:
			logger.Error("Failed to delete expense order", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense order"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

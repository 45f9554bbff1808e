package dto

import (
	"time"

	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrderItemInput is one production line of a new order.
type OrderItemInput struct {
	Product   string          `json:"product" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateOrderRequest creates a production order. The document number is
// allocated server-side and returned in the response.
type CreateOrderRequest struct {
	ClientName  string           `json:"clientName" binding:"required"`
	Description string           `json:"description"`
	Items       []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// CreateQuoteRequest creates a quote in DRAFT.
type CreateQuoteRequest struct {
	ClientName  string          `json:"clientName" binding:"required"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"required"`
}

// CreateExpenseOrderRequest creates an expense order in DRAFT.
type CreateExpenseOrderRequest struct {
	Supplier    string          `json:"supplier" binding:"required"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"required"`
}

// ChangeStatusRequest asks for a status transition. Reason is carried into the
// authorization request when the transition is deferred.
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// AddPaymentRequest registers a payment against an order.
type AddPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method" binding:"required"`
	Notes  string          `json:"notes"`
}

// DocumentResponse is the external representation of a document.
type DocumentResponse struct {
	DocumentID  string          `json:"documentId"`
	Type        string          `json:"type"`
	Number      string          `json:"number"`
	Status      string          `json:"status"`
	ClientName  string          `json:"clientName"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ListDocumentsResponse is a page of documents plus the token for the next page.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ChangeStatusResponse reports the outcome of a status change attempt.
// Request is present only when the transition was deferred for approval.
type ChangeStatusResponse struct {
	Outcome  string                        `json:"outcome"`
	Document *DocumentResponse             `json:"document,omitempty"`
	Request  *AuthorizationRequestResponse `json:"request,omitempty"`
}

// ToDocumentResponse converts a domain document to its external shape.
func ToDocumentResponse(doc domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:  doc.DocumentID,
		Type:        string(doc.Type),
		Number:      doc.Number,
		Status:      string(doc.Status),
		ClientName:  doc.ClientName,
		Description: doc.Description,
		TotalAmount: doc.TotalAmount,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.LastUpdatedAt,
	}
}

package domain

import "github.com/shopspring/decimal"

// DocumentType identifies which business document a row represents.
type DocumentType string

const (
	DocumentTypeOrder        DocumentType = "ORDER"
	DocumentTypeQuote        DocumentType = "QUOTE"
	DocumentTypeExpenseOrder DocumentType = "EXPENSE_ORDER"
)

// DocumentStatus is the workflow status of a document. The set of valid values
// depends on the document type; see workflow.go for the transition tables.
type DocumentStatus string

// Order statuses.
const (
	OrderStatusCreated      DocumentStatus = "CREATED"
	OrderStatusInProduction DocumentStatus = "IN_PRODUCTION"
	OrderStatusReady        DocumentStatus = "READY"
	OrderStatusDelivered    DocumentStatus = "DELIVERED"
	OrderStatusCancelled    DocumentStatus = "CANCELLED"
)

// Quote statuses.
const (
	QuoteStatusDraft     DocumentStatus = "DRAFT"
	QuoteStatusSent      DocumentStatus = "SENT"
	QuoteStatusAccepted  DocumentStatus = "ACCEPTED"
	QuoteStatusRejected  DocumentStatus = "REJECTED"
	QuoteStatusConverted DocumentStatus = "CONVERTED"
	QuoteStatusCancelled DocumentStatus = "CANCELLED"
)

// Expense order statuses.
const (
	ExpenseStatusDraft      DocumentStatus = "DRAFT"
	ExpenseStatusCreated    DocumentStatus = "CREATED"
	ExpenseStatusAuthorized DocumentStatus = "AUTHORIZED"
	ExpenseStatusPaid       DocumentStatus = "PAID"
)

// Document is the shape shared by orders, quotes and expense orders.
// Number is assigned once at creation and never changes afterwards.
// Version guards concurrent status updates: a transition only commits when the
// stored version still matches the one the caller read.
type Document struct {
	DocumentID  string          `json:"documentId"`
	Type        DocumentType    `json:"type"`
	Number      string          `json:"number"`
	Status      DocumentStatus  `json:"status"`
	ClientName  string          `json:"clientName"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Version     int64           `json:"version"`
	AuditFields
}

// OrderItem is a production line on an order. Snapshots of items carry the
// owning documentId so the order's audit trail can pick them up.
type OrderItem struct {
	ItemID     string          `json:"itemId"`
	DocumentID string          `json:"documentId"`
	Product    string          `json:"product"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	AuditFields
}

// Payment is a (partial) payment registered against an order.
type Payment struct {
	PaymentID  string          `json:"paymentId"`
	DocumentID string          `json:"documentId"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Notes      string          `json:"notes"`
	AuditFields
}

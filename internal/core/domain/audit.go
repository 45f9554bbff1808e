package domain

import "time"

// AuditAction is the kind of mutation an audit entry records.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

// Audited model names, shared between the recorder and the history queries.
const (
	AuditModelOrder                = "Order"
	AuditModelQuote                = "Quote"
	AuditModelExpenseOrder         = "ExpenseOrder"
	AuditModelOrderItem            = "OrderItem"
	AuditModelPayment              = "Payment"
	AuditModelAuthorizationRequest = "AuthorizationRequest"
	AuditModelUser                 = "User"
)

// AuditLogEntry is an append-only record of one mutation. Entries are never
// updated or deleted by application code. UserID is nil for system actions.
type AuditLogEntry struct {
	AuditID   string         `json:"auditId"`
	Model     string         `json:"model"`
	RecordID  string         `json:"recordId"`
	Action    AuditAction    `json:"action"`
	OldData   map[string]any `json:"oldData,omitempty"`
	NewData   map[string]any `json:"newData,omitempty"`
	UserID    *string        `json:"userId,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ActorSummary is the resolved identity attached to history entries.
type ActorSummary struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// AuditHistoryEntry is an audit entry enriched for the read side.
// Actor is nil when the underlying action had no user.
type AuditHistoryEntry struct {
	AuditLogEntry
	Actor *ActorSummary `json:"actor"`
}

// AuditModelForType maps a document type to its audited model name.
func AuditModelForType(t DocumentType) string {
	switch t {
	case DocumentTypeOrder:
		return AuditModelOrder
	case DocumentTypeQuote:
		return AuditModelQuote
	case DocumentTypeExpenseOrder:
		return AuditModelExpenseOrder
	}
	return string(t)
}

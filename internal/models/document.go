package models

import "github.com/shopspring/decimal"

// Document is the persisted shape of a business document row.
type Document struct {
	DocumentID  string          `json:"documentId"`
	Type        string          `json:"type"`
	Number      string          `json:"number"`
	Status      string          `json:"status"`
	ClientName  string          `json:"clientName"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Version     int64           `json:"version"`
	AuditFields
}

// OrderItem is the persisted shape of an order line row.
type OrderItem struct {
	ItemID     string          `json:"itemId"`
	DocumentID string          `json:"documentId"`
	Product    string          `json:"product"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	AuditFields
}

// Payment is the persisted shape of a payment row.
type Payment struct {
	PaymentID  string          `json:"paymentId"`
	DocumentID string          `json:"documentId"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Notes      string          `json:"notes"`
	AuditFields
}

package domain

import "time"

// AuthorizationRequestStatus is the lifecycle of a deferred-transition request.
type AuthorizationRequestStatus string

const (
	AuthorizationStatusPending  AuthorizationRequestStatus = "PENDING"
	AuthorizationStatusApproved AuthorizationRequestStatus = "APPROVED"
	AuthorizationStatusRejected AuthorizationRequestStatus = "REJECTED"
)

// AuthorizationRequest defers a gated transition until a privileged reviewer
// approves or rejects it. At most one PENDING request exists per document,
// enforced by a partial unique index on the storage side.
type AuthorizationRequest struct {
	RequestID       string                     `json:"requestId"`
	DocumentID      string                     `json:"documentId"`
	RequestedStatus DocumentStatus             `json:"requestedStatus"`
	Reason          string                     `json:"reason"`
	Status          AuthorizationRequestStatus `json:"status"`
	RequestedBy     string                     `json:"requestedBy"`
	ReviewedBy      *string                    `json:"reviewedBy,omitempty"`
	ReviewNotes     *string                    `json:"reviewNotes,omitempty"`
	ReviewedAt      *time.Time                 `json:"reviewedAt,omitempty"`
	CreatedAt       time.Time                  `json:"createdAt"`
}

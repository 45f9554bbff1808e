package models

import "time"

// AuthorizationRequest is the persisted shape of a deferred-transition request.
type AuthorizationRequest struct {
	RequestID       string     `json:"requestId"`
	DocumentID      string     `json:"documentId"`
	RequestedStatus string     `json:"requestedStatus"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	RequestedBy     string     `json:"requestedBy"`
	ReviewedBy      *string    `json:"reviewedBy,omitempty"`
	ReviewNotes     *string    `json:"reviewNotes,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

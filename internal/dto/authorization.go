package dto

import (
	"time"

	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
)

// ReviewRequest carries the optional notes of an approve/reject decision.
type ReviewRequest struct {
	Notes *string `json:"notes"`
}

// AuthorizationRequestResponse is the external representation of a request.
type AuthorizationRequestResponse struct {
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

// ToAuthorizationRequestResponse converts a domain request to its external shape.
func ToAuthorizationRequestResponse(req domain.AuthorizationRequest) AuthorizationRequestResponse {
	return AuthorizationRequestResponse{
		RequestID:       req.RequestID,
		DocumentID:      req.DocumentID,
		RequestedStatus: string(req.RequestedStatus),
		Reason:          req.Reason,
		Status:          string(req.Status),
		RequestedBy:     req.RequestedBy,
		ReviewedBy:      req.ReviewedBy,
		ReviewNotes:     req.ReviewNotes,
		ReviewedAt:      req.ReviewedAt,
		CreatedAt:       req.CreatedAt,
	}
}

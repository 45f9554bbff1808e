package mapping

import (
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/models"
)

// ToModelAuthorizationRequest converts a domain request to its persisted shape.
func ToModelAuthorizationRequest(r domain.AuthorizationRequest) models.AuthorizationRequest {
	return models.AuthorizationRequest{
		RequestID:       r.RequestID,
		DocumentID:      r.DocumentID,
		RequestedStatus: string(r.RequestedStatus),
		Reason:          r.Reason,
		Status:          string(r.Status),
		RequestedBy:     r.RequestedBy,
		ReviewedBy:      r.ReviewedBy,
		ReviewNotes:     r.ReviewNotes,
		ReviewedAt:      r.ReviewedAt,
		CreatedAt:       r.CreatedAt,
	}
}

// ToDomainAuthorizationRequest converts a persisted request row to the domain shape.
func ToDomainAuthorizationRequest(m models.AuthorizationRequest) domain.AuthorizationRequest {
	return domain.AuthorizationRequest{
		RequestID:       m.RequestID,
		DocumentID:      m.DocumentID,
		RequestedStatus: domain.DocumentStatus(m.RequestedStatus),
		Reason:          m.Reason,
		Status:          domain.AuthorizationRequestStatus(m.Status),
		RequestedBy:     m.RequestedBy,
		ReviewedBy:      m.ReviewedBy,
		ReviewNotes:     m.ReviewNotes,
		ReviewedAt:      m.ReviewedAt,
		CreatedAt:       m.CreatedAt,
	}
}

package repositories

import (
	"context"
	"time"

	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
)

// AuthorizationRepository owns the authorization_requests table.
type AuthorizationRepository interface {
	// SaveRequest inserts a new PENDING request. Returns apperrors.ErrDuplicate
	// when a PENDING request already exists for the document (partial unique
	// index violation).
	SaveRequest(ctx context.Context, req domain.AuthorizationRequest) error

	// FindRequestByID retrieves a request by its identifier.
	FindRequestByID(ctx context.Context, requestID string) (*domain.AuthorizationRequest, error)

	// FindPendingByDocumentID returns the PENDING request for a document, or
	// apperrors.ErrNotFound when none exists.
	FindPendingByDocumentID(ctx context.Context, documentID string) (*domain.AuthorizationRequest, error)

	// ListPending returns PENDING requests, oldest first.
	ListPending(ctx context.Context, limit, offset int) ([]domain.AuthorizationRequest, error)

	// MarkReviewed conditionally resolves a PENDING request. Returns
	// apperrors.ErrConflict when the request is no longer PENDING, so a request
	// is resolved exactly once even under concurrent reviewers.
	MarkReviewed(ctx context.Context, requestID string, status domain.AuthorizationRequestStatus, reviewedBy string, notes *string, reviewedAt time.Time) error

	// ReopenRequest puts a just-resolved request back to PENDING. Used as
	// compensation when the deferred transition cannot be applied because the
	// document moved on since the request was filed.
	ReopenRequest(ctx context.Context, requestID string) error
}

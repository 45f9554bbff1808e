package services

import (
	"context"

	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
)

// SequenceSvcFacade issues the next human-readable document number.
type SequenceSvcFacade interface {
	// NextNumber allocates and formats the next number for a document type.
	// prefix defaults to the type's configured prefix when empty; year defaults
	// to the current calendar year when nil. Write races are retried
	// transparently and never surfaced to the caller.
	NextNumber(ctx context.Context, docType domain.DocumentType, prefix string, year *int) (string, error)
}

// AuditSvcFacade records mutations and serves history queries.
type AuditSvcFacade interface {
	// Record schedules an audit write and returns immediately; the write runs
	// detached from the caller's cancellation scope and its failure is logged,
	// never propagated. oldData/newData may be nil (CREATE has no oldData,
	// DELETE no newData).
	Record(ctx context.Context, action domain.AuditAction, model, recordID string, oldData, newData any, userID *string)

	// HistoryFor returns the chronological audit trail of a record, including
	// related-model entries referencing it, each enriched with a resolved actor
	// summary (nil for system actions).
	HistoryFor(ctx context.Context, recordID string) ([]domain.AuditHistoryEntry, error)
}

// TransitionSvcFacade validates and applies status transitions.
type TransitionSvcFacade interface {
	// AttemptTransition checks the transition table and capability gates for
	// the requested status. Applied outcomes persist the change (version
	// guarded) and mutate doc in place; Deferred and Rejected outcomes leave
	// the document untouched.
	AttemptTransition(ctx context.Context, doc *domain.Document, requested domain.DocumentStatus, capabilities []string, actorID string) (domain.TransitionOutcome, error)
}

// AuthorizationSvcFacade implements the deferred-approval exception path.
type AuthorizationSvcFacade interface {
	// CreateRequest files a PENDING request for a gated transition and notifies
	// reviewers. Fails with apperrors.ErrDuplicate when the document already
	// has a PENDING request.
	CreateRequest(ctx context.Context, documentID string, requested domain.DocumentStatus, reason, requestedBy string) (*domain.AuthorizationRequest, error)

	// Approve resolves a PENDING request and applies the deferred transition.
	// Fails with apperrors.ErrConflict when the request is no longer PENDING or
	// the document's status moved on since the request was filed.
	Approve(ctx context.Context, requestID, reviewedBy string, notes *string) (*domain.AuthorizationRequest, error)

	// Reject resolves a PENDING request without touching the document.
	Reject(ctx context.Context, requestID, reviewedBy string, notes *string) (*domain.AuthorizationRequest, error)

	// ListPending returns unresolved requests, oldest first.
	ListPending(ctx context.Context, limit, offset int) ([]domain.AuthorizationRequest, error)
}

// CapabilitySvcFacade is the permission lookup collaborator.
type CapabilitySvcFacade interface {
	ActorHasCapability(ctx context.Context, actorID, capability string) (bool, error)
	ActorCapabilities(ctx context.Context, actorID string) ([]string, error)
	ActorsWithCapability(ctx context.Context, capability string) ([]string, error)
}

// Notifier is the best-effort notification collaborator. Delivery failures
// never affect the operation that triggered the notification.
type Notifier interface {
	Notify(ctx context.Context, actorIDs []string, title, message string) error
}

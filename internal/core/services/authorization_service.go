package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portsrepo "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/repositories"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/middleware"
)

// AuthorizationService implements the deferred-approval exception path for
// gated transitions.
type AuthorizationService struct {
	authzRepo    portsrepo.AuthorizationRepository
	documentRepo portsrepo.DocumentReader
	transition   portssvc.TransitionSvcFacade
	audit        portssvc.AuditSvcFacade
	capability   portssvc.CapabilitySvcFacade
	notifier     portssvc.Notifier
	now          func() time.Time
}

// NewAuthorizationService creates a new AuthorizationService.
func NewAuthorizationService(
	authzRepo portsrepo.AuthorizationRepository,
	documentRepo portsrepo.DocumentReader,
	transition portssvc.TransitionSvcFacade,
	audit portssvc.AuditSvcFacade,
	capability portssvc.CapabilitySvcFacade,
	notifier portssvc.Notifier,
) *AuthorizationService {
	return &AuthorizationService{
		authzRepo:    authzRepo,
		documentRepo: documentRepo,
		transition:   transition,
		audit:        audit,
		capability:   capability,
		notifier:     notifier,
		now:          time.Now,
	}
}

var _ portssvc.AuthorizationSvcFacade = (*AuthorizationService)(nil)

// CreateRequest files a PENDING request for a gated transition and notifies
// every actor holding the gate's capability. The partial unique index keeps
// this to at most one PENDING request per document; a second attempt fails
// with ErrDuplicate.
func (s *AuthorizationService) CreateRequest(ctx context.Context, documentID string, requested domain.DocumentStatus, reason, requestedBy string) (*domain.AuthorizationRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	gate, gated := domain.GateFor(doc.Type, requested)
	if !gated || !gate.Deferrable {
		return nil, fmt.Errorf("%w: status %s of %s does not support deferred approval", apperrors.ErrValidation, requested, doc.Type)
	}

	request := domain.AuthorizationRequest{
		RequestID:       uuid.NewString(),
		DocumentID:      documentID,
		RequestedStatus: requested,
		Reason:          reason,
		Status:          domain.AuthorizationStatusPending,
		RequestedBy:     requestedBy,
		CreatedAt:       s.now(),
	}
	if err := s.authzRepo.SaveRequest(ctx, request); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save authorization request", slog.String("error", err.Error()), slog.String("document_id", documentID))
		}
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditActionCreate, domain.AuditModelAuthorizationRequest, request.RequestID, nil, request, &requestedBy)
	s.notifyReviewers(ctx, gate.Capability, doc, requested)

	logger.Info("Authorization request created",
		slog.String("request_id", request.RequestID),
		slog.String("document_id", documentID),
		slog.String("requested_status", string(requested)),
	)
	return &request, nil
}

// Approve resolves a PENDING request and applies the deferred transition with
// the gate's capability implicitly granted. When the document's status moved
// on since the request was filed, the transition no longer applies cleanly:
// the request is reopened and ErrConflict is returned so the reviewer sees a
// clear "state changed" outcome instead of a silent mis-transition.
func (s *AuthorizationService) Approve(ctx context.Context, requestID, reviewedBy string, notes *string) (*domain.AuthorizationRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.authzRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	reviewedAt := s.now()
	// Claim the request first; the conditional update guarantees a request is
	// resolved exactly once even with concurrent reviewers.
	if err := s.authzRepo.MarkReviewed(ctx, requestID, domain.AuthorizationStatusApproved, reviewedBy, notes, reviewedAt); err != nil {
		return nil, err
	}

	doc, err := s.documentRepo.FindDocumentByID(ctx, request.DocumentID)
	if err != nil {
		s.reopen(ctx, requestID)
		return nil, err
	}

	before := *doc
	capabilities := []string{}
	if gate, gated := domain.GateFor(doc.Type, request.RequestedStatus); gated {
		capabilities = append(capabilities, gate.Capability)
	}

	outcome, err := s.transition.AttemptTransition(ctx, doc, request.RequestedStatus, capabilities, reviewedBy)
	if err != nil {
		s.reopen(ctx, requestID)
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: document %s changed while the request was being approved", apperrors.ErrConflict, request.DocumentID)
		}
		return nil, err
	}
	if outcome.Kind != domain.OutcomeApplied {
		s.reopen(ctx, requestID)
		logger.Warn("Deferred transition no longer applicable",
			slog.String("request_id", requestID),
			slog.String("document_id", request.DocumentID),
			slog.String("document_status", string(doc.Status)),
			slog.String("requested_status", string(request.RequestedStatus)),
		)
		return nil, fmt.Errorf("%w: document %s is now %s and can no longer move to %s", apperrors.ErrConflict, request.DocumentID, doc.Status, request.RequestedStatus)
	}

	reviewed := *request
	reviewed.Status = domain.AuthorizationStatusApproved
	reviewed.ReviewedBy = &reviewedBy
	reviewed.ReviewNotes = notes
	reviewed.ReviewedAt = &reviewedAt

	s.audit.Record(ctx, domain.AuditActionUpdate, domain.AuditModelAuthorizationRequest, requestID, request, reviewed, &reviewedBy)
	s.audit.Record(ctx, domain.AuditActionUpdate, domain.AuditModelForType(doc.Type), doc.DocumentID, before, *doc, &reviewedBy)
	s.notifyRequester(ctx, reviewed, "approved")

	logger.Info("Authorization request approved",
		slog.String("request_id", requestID),
		slog.String("document_id", request.DocumentID),
		slog.String("status", string(doc.Status)),
	)
	return &reviewed, nil
}

// Reject resolves a PENDING request without touching the document.
func (s *AuthorizationService) Reject(ctx context.Context, requestID, reviewedBy string, notes *string) (*domain.AuthorizationRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.authzRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	reviewedAt := s.now()
	if err := s.authzRepo.MarkReviewed(ctx, requestID, domain.AuthorizationStatusRejected, reviewedBy, notes, reviewedAt); err != nil {
		return nil, err
	}

	reviewed := *request
	reviewed.Status = domain.AuthorizationStatusRejected
	reviewed.ReviewedBy = &reviewedBy
	reviewed.ReviewNotes = notes
	reviewed.ReviewedAt = &reviewedAt

	s.audit.Record(ctx, domain.AuditActionUpdate, domain.AuditModelAuthorizationRequest, requestID, request, reviewed, &reviewedBy)
	s.notifyRequester(ctx, reviewed, "rejected")

	logger.Info("Authorization request rejected",
		slog.String("request_id", requestID),
		slog.String("document_id", request.DocumentID),
	)
	return &reviewed, nil
}

// ListPending returns unresolved requests, oldest first.
func (s *AuthorizationService) ListPending(ctx context.Context, limit, offset int) ([]domain.AuthorizationRequest, error) {
	return s.authzRepo.ListPending(ctx, limit, offset)
}

func (s *AuthorizationService) reopen(ctx context.Context, requestID string) {
	if err := s.authzRepo.ReopenRequest(ctx, requestID); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to reopen authorization request",
			slog.String("error", err.Error()),
			slog.String("request_id", requestID),
		)
	}
}

// notifyReviewers is best effort: a notification failure never fails the request.
func (s *AuthorizationService) notifyReviewers(ctx context.Context, capability string, doc *domain.Document, requested domain.DocumentStatus) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reviewerIDs, err := s.capability.ActorsWithCapability(ctx, capability)
	if err != nil {
		logger.Warn("Failed to resolve reviewers for notification", slog.String("error", err.Error()), slog.String("capability", capability))
		return
	}
	if len(reviewerIDs) == 0 {
		return
	}

	title := "Authorization requested"
	message := fmt.Sprintf("Document %s requests transition to %s", doc.Number, requested)
	if err := s.notifier.Notify(ctx, reviewerIDs, title, message); err != nil {
		logger.Warn("Failed to notify reviewers", slog.String("error", err.Error()), slog.String("document_id", doc.DocumentID))
	}
}

func (s *AuthorizationService) notifyRequester(ctx context.Context, request domain.AuthorizationRequest, decision string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	title := "Authorization request " + decision
	message := fmt.Sprintf("Your request to move document %s to %s was %s", request.DocumentID, request.RequestedStatus, decision)
	if err := s.notifier.Notify(ctx, []string{request.RequestedBy}, title, message); err != nil {
		logger.Warn("Failed to notify requester", slog.String("error", err.Error()), slog.String("request_id", request.RequestID))
	}
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portsrepo "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/repositories"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/middleware"
)

// LifecycleService coordinates numbering, status transitions and auditing for
// every document module. Document services never talk to the sequence
// allocator, transition engine or audit recorder directly.
type LifecycleService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
	sequence     portssvc.SequenceSvcFacade
	transition   portssvc.TransitionSvcFacade
	authorize    portssvc.AuthorizationSvcFacade
	audit        portssvc.AuditSvcFacade
	capability   portssvc.CapabilitySvcFacade
	now          func() time.Time
}

// NewLifecycleService creates a new LifecycleService.
func NewLifecycleService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	sequence portssvc.SequenceSvcFacade,
	transition portssvc.TransitionSvcFacade,
	authorize portssvc.AuthorizationSvcFacade,
	audit portssvc.AuditSvcFacade,
	capability portssvc.CapabilitySvcFacade,
) *LifecycleService {
	return &LifecycleService{
		documentRepo: documentRepo,
		sequence:     sequence,
		transition:   transition,
		authorize:    authorize,
		audit:        audit,
		capability:   capability,
		now:          time.Now,
	}
}

var _ portssvc.LifecycleSvcFacade = (*LifecycleService)(nil)

// CreateDocument allocates the document number, persists the document in its
// type's initial status and schedules the CREATE audit entry. A failure on the
// number or the insert aborts the whole creation; the audit write is detached
// and never awaited.
func (s *LifecycleService) CreateDocument(ctx context.Context, doc *domain.Document, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.IsValidDocumentType(doc.Type) {
		return fmt.Errorf("%w: unknown document type %q", apperrors.ErrValidation, doc.Type)
	}

	number, err := s.sequence.NextNumber(ctx, doc.Type, "", nil)
	if err != nil {
		return err
	}

	now := s.now()
	doc.Number = number
	doc.Status = domain.InitialStatus(doc.Type)
	doc.Version = 1
	doc.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}

	if err := s.documentRepo.SaveDocument(ctx, *doc); err != nil {
		logger.Error("Failed to save document", slog.String("error", err.Error()), slog.String("document_id", doc.DocumentID))
		return err
	}

	s.audit.Record(ctx, domain.AuditActionCreate, domain.AuditModelForType(doc.Type), doc.DocumentID, nil, *doc, &actorID)

	logger.Info("Document created",
		slog.String("document_id", doc.DocumentID),
		slog.String("number", doc.Number),
		slog.String("doc_type", string(doc.Type)),
	)
	return nil
}

// ChangeStatus loads the document fresh, runs the transition engine with the
// actor's capabilities, and turns the outcome into the operation's result:
// persisted change, a new authorization request, or a rejection error.
func (s *LifecycleService) ChangeStatus(ctx context.Context, documentID string, docType domain.DocumentType, requested domain.DocumentStatus, reason, actorID string) (*portssvc.ChangeStatusResult, error) {
	doc, err := s.loadTyped(ctx, documentID, docType)
	if err != nil {
		return nil, err
	}

	capabilities, err := s.capability.ActorCapabilities(ctx, actorID)
	if err != nil {
		return nil, err
	}

	before := *doc
	outcome, err := s.transition.AttemptTransition(ctx, doc, requested, capabilities, actorID)
	if err != nil {
		return nil, err
	}

	switch outcome.Kind {
	case domain.OutcomeApplied:
		s.audit.Record(ctx, domain.AuditActionUpdate, domain.AuditModelForType(docType), documentID, before, *doc, &actorID)
		return &portssvc.ChangeStatusResult{Outcome: domain.OutcomeApplied, Document: doc}, nil

	case domain.OutcomeDeferred:
		request, err := s.authorize.CreateRequest(ctx, documentID, requested, reason, actorID)
		if err != nil {
			return nil, err
		}
		return &portssvc.ChangeStatusResult{Outcome: domain.OutcomeDeferred, Document: doc, Request: request}, nil

	default:
		return nil, outcome.Reason
	}
}

// DeleteDocument removes a document still in its initial status and schedules
// the DELETE audit entry. Documents that have advanced past their initial
// status are part of the business record and cannot be deleted.
func (s *LifecycleService) DeleteDocument(ctx context.Context, documentID string, docType domain.DocumentType, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.loadTyped(ctx, documentID, docType)
	if err != nil {
		return err
	}

	initial := domain.InitialStatus(docType)
	if doc.Status != initial {
		return fmt.Errorf("%w: only documents in %s can be deleted", apperrors.ErrValidation, initial)
	}

	if err := s.documentRepo.DeleteDocument(ctx, documentID, initial); err != nil {
		return err
	}

	s.audit.Record(ctx, domain.AuditActionDelete, domain.AuditModelForType(docType), documentID, *doc, nil, &actorID)

	logger.Info("Document deleted", slog.String("document_id", documentID), slog.String("doc_type", string(docType)))
	return nil
}

// loadTyped fetches a document and verifies it is of the expected type, so an
// order endpoint can never mutate a quote that shares the ID space.
func (s *LifecycleService) loadTyped(ctx context.Context, documentID string, docType domain.DocumentType) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Type != docType {
		return nil, apperrors.ErrNotFound
	}
	return doc, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portsrepo "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/repositories"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/middleware"
)

// TransitionService is the status transition engine. It is one generic engine
// over the per-type transition and gating tables in the domain package; there
// is no per-document-type subtype.
type TransitionService struct {
	documentRepo portsrepo.DocumentWriter
	now          func() time.Time
}

// NewTransitionService creates a new TransitionService.
func NewTransitionService(documentRepo portsrepo.DocumentWriter) *TransitionService {
	return &TransitionService{documentRepo: documentRepo, now: time.Now}
}

var _ portssvc.TransitionSvcFacade = (*TransitionService)(nil)

// AttemptTransition validates the requested status against the document's
// transition table and capability gates.
//
//   - Applied: the change is legal and permitted; it is persisted with a
//     status+version guard and doc is mutated to the new state.
//   - Deferred: the target is gated, the actor lacks the capability and the
//     gate is deferrable; nothing is persisted.
//   - Rejected: the transition is illegal, or gated without deferral; Reason
//     wraps ErrIllegalTransition or ErrForbidden.
//
// A guard miss on persistence returns apperrors.ErrConflict: another
// transition committed since the caller read the document.
func (s *TransitionService) AttemptTransition(ctx context.Context, doc *domain.Document, requested domain.DocumentStatus, capabilities []string, actorID string) (domain.TransitionOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.CanTransition(doc.Type, doc.Status, requested) {
		logger.Warn("Illegal status transition requested",
			slog.String("document_id", doc.DocumentID),
			slog.String("from", string(doc.Status)),
			slog.String("to", string(requested)),
		)
		return domain.TransitionOutcome{
			Kind:   domain.OutcomeRejected,
			Reason: fmt.Errorf("%w: %s -> %s is not allowed for %s", apperrors.ErrIllegalTransition, doc.Status, requested, doc.Type),
		}, nil
	}

	if gate, gated := domain.GateFor(doc.Type, requested); gated && !slices.Contains(capabilities, gate.Capability) {
		if gate.Deferrable {
			logger.Info("Gated transition deferred",
				slog.String("document_id", doc.DocumentID),
				slog.String("to", string(requested)),
				slog.String("required_capability", gate.Capability),
			)
			return domain.TransitionOutcome{
				Kind:               domain.OutcomeDeferred,
				RequiredCapability: gate.Capability,
			}, nil
		}
		logger.Warn("Gated transition rejected",
			slog.String("document_id", doc.DocumentID),
			slog.String("to", string(requested)),
			slog.String("required_capability", gate.Capability),
		)
		return domain.TransitionOutcome{
			Kind:               domain.OutcomeRejected,
			RequiredCapability: gate.Capability,
			Reason:             fmt.Errorf("%w: moving to %s requires capability %s", apperrors.ErrForbidden, requested, gate.Capability),
		}, nil
	}

	now := s.now()
	if err := s.documentRepo.UpdateDocumentStatus(ctx, doc.DocumentID, doc.Status, requested, doc.Version, actorID, now); err != nil {
		return domain.TransitionOutcome{}, err
	}

	doc.Status = requested
	doc.Version++
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = actorID

	logger.Info("Status transition applied",
		slog.String("document_id", doc.DocumentID),
		slog.String("status", string(requested)),
	)
	return domain.TransitionOutcome{Kind: domain.OutcomeApplied}, nil
}

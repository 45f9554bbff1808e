package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portsrepo "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/repositories"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/dto"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/middleware"
)

// QuoteService is the quote module.
type QuoteService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
	lifecycle    portssvc.LifecycleSvcFacade
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(documentRepo portsrepo.DocumentRepositoryFacade, lifecycle portssvc.LifecycleSvcFacade) *QuoteService {
	return &QuoteService{documentRepo: documentRepo, lifecycle: lifecycle}
}

var _ portssvc.QuoteSvcFacade = (*QuoteService)(nil)

// CreateQuote creates a quote in DRAFT.
func (s *QuoteService) CreateQuote(ctx context.Context, req dto.CreateQuoteRequest, actorID string) (*domain.Document, error) {
	doc := domain.Document{
		DocumentID:  uuid.NewString(),
		Type:        domain.DocumentTypeQuote,
		ClientName:  req.ClientName,
		Description: req.Description,
		TotalAmount: req.TotalAmount,
	}
	if err := s.lifecycle.CreateDocument(ctx, &doc, actorID); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetQuote returns a quote by ID.
func (s *QuoteService) GetQuote(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.loadQuote(ctx, documentID)
}

// ListQuotes returns a page of quotes, newest first.
func (s *QuoteService) ListQuotes(ctx context.Context, limit int, nextToken *string) ([]domain.Document, *string, error) {
	return s.documentRepo.ListDocumentsByType(ctx, domain.DocumentTypeQuote, limit, nextToken)
}

// ChangeQuoteStatus attempts a status transition on a quote.
func (s *QuoteService) ChangeQuoteStatus(ctx context.Context, documentID string, requested domain.DocumentStatus, reason, actorID string) (*portssvc.ChangeStatusResult, error) {
	return s.lifecycle.ChangeStatus(ctx, documentID, domain.DocumentTypeQuote, requested, reason, actorID)
}

// DeleteQuote removes a quote still in DRAFT.
func (s *QuoteService) DeleteQuote(ctx context.Context, documentID, actorID string) error {
	return s.lifecycle.DeleteDocument(ctx, documentID, domain.DocumentTypeQuote, actorID)
}

// ConvertQuote turns an ACCEPTED quote into a production order. The order is
// created first; if moving the quote to CONVERTED then fails, the fresh order
// is deleted again so conversion stays all-or-nothing from the caller's view.
func (s *QuoteService) ConvertQuote(ctx context.Context, documentID, actorID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	quote, err := s.loadQuote(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if quote.Status != domain.QuoteStatusAccepted {
		return nil, fmt.Errorf("%w: only ACCEPTED quotes can be converted, quote is %s", apperrors.ErrValidation, quote.Status)
	}

	order := domain.Document{
		DocumentID:  uuid.NewString(),
		Type:        domain.DocumentTypeOrder,
		ClientName:  quote.ClientName,
		Description: fmt.Sprintf("Converted from quote %s. %s", quote.Number, quote.Description),
		TotalAmount: quote.TotalAmount,
	}
	if err := s.lifecycle.CreateDocument(ctx, &order, actorID); err != nil {
		return nil, err
	}

	result, err := s.lifecycle.ChangeStatus(ctx, documentID, domain.DocumentTypeQuote, domain.QuoteStatusConverted, "", actorID)
	if err != nil {
		if delErr := s.lifecycle.DeleteDocument(ctx, order.DocumentID, domain.DocumentTypeOrder, actorID); delErr != nil {
			logger.Error("Failed to roll back order after quote conversion failure",
				slog.String("error", delErr.Error()),
				slog.String("order_id", order.DocumentID),
				slog.String("quote_id", documentID),
			)
		}
		return nil, err
	}
	if result.Outcome != domain.OutcomeApplied {
		// CONVERTED is ungated, so anything but Applied means a programming error.
		return nil, fmt.Errorf("%w: unexpected conversion outcome %s", apperrors.ErrConflict, result.Outcome)
	}

	logger.Info("Quote converted to order",
		slog.String("quote_id", documentID),
		slog.String("order_id", order.DocumentID),
		slog.String("order_number", order.Number),
	)
	return &order, nil
}

func (s *QuoteService) loadQuote(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Type != domain.DocumentTypeQuote {
		return nil, apperrors.ErrNotFound
	}
	return doc, nil
}

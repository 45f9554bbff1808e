package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portsrepo "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/repositories"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/dto"
)

// ExpenseOrderService is the expense order module. Its AUTHORIZED and PAID
// transitions are capability-gated; the gating itself lives in the transition
// engine, so this service is thin by design.
type ExpenseOrderService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
	lifecycle    portssvc.LifecycleSvcFacade
}

// NewExpenseOrderService creates a new ExpenseOrderService.
func NewExpenseOrderService(documentRepo portsrepo.DocumentRepositoryFacade, lifecycle portssvc.LifecycleSvcFacade) *ExpenseOrderService {
	return &ExpenseOrderService{documentRepo: documentRepo, lifecycle: lifecycle}
}

var _ portssvc.ExpenseOrderSvcFacade = (*ExpenseOrderService)(nil)

// CreateExpenseOrder creates an expense order in DRAFT.
func (s *ExpenseOrderService) CreateExpenseOrder(ctx context.Context, req dto.CreateExpenseOrderRequest, actorID string) (*domain.Document, error) {
	doc := domain.Document{
		DocumentID:  uuid.NewString(),
		Type:        domain.DocumentTypeExpenseOrder,
		ClientName:  req.Supplier,
		Description: req.Description,
		TotalAmount: req.TotalAmount,
	}
	if err := s.lifecycle.CreateDocument(ctx, &doc, actorID); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetExpenseOrder returns an expense order by ID.
func (s *ExpenseOrderService) GetExpenseOrder(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Type != domain.DocumentTypeExpenseOrder {
		return nil, apperrors.ErrNotFound
	}
	return doc, nil
}

// ListExpenseOrders returns a page of expense orders, newest first.
func (s *ExpenseOrderService) ListExpenseOrders(ctx context.Context, limit int, nextToken *string) ([]domain.Document, *string, error) {
	return s.documentRepo.ListDocumentsByType(ctx, domain.DocumentTypeExpenseOrder, limit, nextToken)
}

// ChangeExpenseOrderStatus attempts a status transition on an expense order.
func (s *ExpenseOrderService) ChangeExpenseOrderStatus(ctx context.Context, documentID string, requested domain.DocumentStatus, reason, actorID string) (*portssvc.ChangeStatusResult, error) {
	return s.lifecycle.ChangeStatus(ctx, documentID, domain.DocumentTypeExpenseOrder, requested, reason, actorID)
}

// DeleteExpenseOrder removes an expense order still in DRAFT.
func (s *ExpenseOrderService) DeleteExpenseOrder(ctx context.Context, documentID, actorID string) error {
	return s.lifecycle.DeleteDocument(ctx, documentID, domain.DocumentTypeExpenseOrder, actorID)
}

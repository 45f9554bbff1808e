package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portsrepo "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/repositories"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/dto"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/middleware"
	"github.com/shopspring/decimal"
)

// OrderService is the production-order module. Numbering, transitions and
// auditing are delegated to the lifecycle coordinator; this service owns order
// lines and payments.
type OrderService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
	detailRepo   portsrepo.OrderDetailRepository
	lifecycle    portssvc.LifecycleSvcFacade
	audit        portssvc.AuditSvcFacade
	now          func() time.Time
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	detailRepo portsrepo.OrderDetailRepository,
	lifecycle portssvc.LifecycleSvcFacade,
	audit portssvc.AuditSvcFacade,
) *OrderService {
	return &OrderService{
		documentRepo: documentRepo,
		detailRepo:   detailRepo,
		lifecycle:    lifecycle,
		audit:        audit,
		now:          time.Now,
	}
}

var _ portssvc.OrderSvcFacade = (*OrderService)(nil)

// CreateOrder creates an order with its lines. The total is computed from the
// lines, never taken from the client.
func (s *OrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, actorID string) (*domain.Document, []domain.OrderItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	total := decimal.Zero
	for _, item := range req.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	doc := domain.Document{
		DocumentID:  uuid.NewString(),
		Type:        domain.DocumentTypeOrder,
		ClientName:  req.ClientName,
		Description: req.Description,
		TotalAmount: total,
	}
	if err := s.lifecycle.CreateDocument(ctx, &doc, actorID); err != nil {
		return nil, nil, err
	}

	now := s.now()
	items := make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.OrderItem{
			ItemID:     uuid.NewString(),
			DocumentID: doc.DocumentID,
			Product:    item.Product,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
	}
	if err := s.detailRepo.SaveOrderItems(ctx, items); err != nil {
		logger.Error("Failed to save order items", slog.String("error", err.Error()), slog.String("document_id", doc.DocumentID))
		return nil, nil, err
	}

	for _, item := range items {
		s.audit.Record(ctx, domain.AuditActionCreate, domain.AuditModelOrderItem, item.ItemID, nil, item, &actorID)
	}

	return &doc, items, nil
}

// GetOrder returns an order with its lines and payments.
func (s *OrderService) GetOrder(ctx context.Context, documentID string) (*domain.Document, []domain.OrderItem, []domain.Payment, error) {
	doc, err := s.loadOrder(ctx, documentID)
	if err != nil {
		return nil, nil, nil, err
	}

	items, err := s.detailRepo.FindOrderItems(ctx, documentID)
	if err != nil {
		return nil, nil, nil, err
	}
	payments, err := s.detailRepo.FindPayments(ctx, documentID)
	if err != nil {
		return nil, nil, nil, err
	}

	return doc, items, payments, nil
}

// ListOrders returns a page of orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, limit int, nextToken *string) ([]domain.Document, *string, error) {
	return s.documentRepo.ListDocumentsByType(ctx, domain.DocumentTypeOrder, limit, nextToken)
}

// ChangeOrderStatus attempts a status transition on an order.
func (s *OrderService) ChangeOrderStatus(ctx context.Context, documentID string, requested domain.DocumentStatus, reason, actorID string) (*portssvc.ChangeStatusResult, error) {
	return s.lifecycle.ChangeStatus(ctx, documentID, domain.DocumentTypeOrder, requested, reason, actorID)
}

// DeleteOrder removes an order still in its initial status.
func (s *OrderService) DeleteOrder(ctx context.Context, documentID, actorID string) error {
	return s.lifecycle.DeleteDocument(ctx, documentID, domain.DocumentTypeOrder, actorID)
}

// AddPayment registers a payment against an order. The payment's audit entry
// carries the order's ID so it shows up in the order's history.
func (s *OrderService) AddPayment(ctx context.Context, documentID string, req dto.AddPaymentRequest, actorID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.loadOrder(ctx, documentID); err != nil {
		return nil, err
	}

	now := s.now()
	payment := domain.Payment{
		PaymentID:  uuid.NewString(),
		DocumentID: documentID,
		Amount:     req.Amount,
		Method:     req.Method,
		Notes:      req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.detailRepo.SavePayment(ctx, payment); err != nil {
		logger.Error("Failed to save payment", slog.String("error", err.Error()), slog.String("document_id", documentID))
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditActionCreate, domain.AuditModelPayment, payment.PaymentID, nil, payment, &actorID)

	logger.Info("Payment registered", slog.String("payment_id", payment.PaymentID), slog.String("document_id", documentID))
	return &payment, nil
}

func (s *OrderService) loadOrder(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Type != domain.DocumentTypeOrder {
		return nil, apperrors.ErrNotFound
	}
	return doc, nil
}

package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	mockDocRepo   *MockDocumentRepository
	mockLifecycle *MockLifecycleSvc
	mockAudit     *MockAuditSvc
	service       portssvc.OrderSvcFacade
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockLifecycle = new(MockLifecycleSvc)
	suite.mockAudit = new(MockAuditSvc)
	suite.service = services.NewOrderService(suite.mockDocRepo, suite.mockDocRepo, suite.mockLifecycle, suite.mockAudit)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ComputesTotalFromItems() {
	ctx := context.Background()
	actorID := uuid.NewString()
	req := dto.CreateOrderRequest{
		ClientName: "ACME",
		Items: []dto.OrderItemInput{
			{Product: "business cards", Quantity: 3, UnitPrice: decimal.NewFromInt(100)},
			{Product: "flyers", Quantity: 2, UnitPrice: decimal.NewFromFloat(49.50)},
		},
	}

	suite.mockLifecycle.On("CreateDocument", ctx, mock.MatchedBy(func(d *domain.Document) bool {
		// 3*100 + 2*49.50 = 399
		return d.Type == domain.DocumentTypeOrder && d.TotalAmount.Equal(decimal.NewFromInt(399))
	}), actorID).Run(func(args mock.Arguments) {
		d := args.Get(1).(*domain.Document)
		d.Number = "OP-2026-0001"
		d.Status = domain.OrderStatusCreated
	}).Return(nil).Once()

	suite.mockDocRepo.On("SaveOrderItems", ctx, mock.MatchedBy(func(items []domain.OrderItem) bool {
		return len(items) == 2 && items[0].Product == "business cards" && items[1].Quantity == 2
	})).Return(nil).Once()

	suite.mockAudit.On("Record", ctx, domain.AuditActionCreate, domain.AuditModelOrderItem, mock.AnythingOfType("string"), nil, mock.Anything, &actorID).Twice()

	doc, items, err := suite.service.CreateOrder(ctx, req, actorID)

	suite.Require().NoError(err)
	suite.Equal("OP-2026-0001", doc.Number)
	suite.Len(items, 2)
	suite.Equal(doc.DocumentID, items[0].DocumentID)
	suite.mockDocRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestGetOrder_LoadsItemsAndPayments() {
	ctx := context.Background()
	doc := &domain.Document{DocumentID: uuid.NewString(), Type: domain.DocumentTypeOrder}

	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockDocRepo.On("FindOrderItems", ctx, doc.DocumentID).Return([]domain.OrderItem{{ItemID: uuid.NewString()}}, nil).Once()
	suite.mockDocRepo.On("FindPayments", ctx, doc.DocumentID).Return([]domain.Payment{}, nil).Once()

	got, items, payments, err := suite.service.GetOrder(ctx, doc.DocumentID)

	suite.Require().NoError(err)
	suite.Equal(doc.DocumentID, got.DocumentID)
	suite.Len(items, 1)
	suite.Empty(payments)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestGetOrder_TypeMismatchIsNotFound() {
	ctx := context.Background()
	doc := &domain.Document{DocumentID: uuid.NewString(), Type: domain.DocumentTypeQuote}

	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	got, _, _, err := suite.service.GetOrder(ctx, doc.DocumentID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(got)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "FindOrderItems", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestAddPayment_AuditsWithDocumentReference() {
	ctx := context.Background()
	actorID := uuid.NewString()
	doc := &domain.Document{DocumentID: uuid.NewString(), Type: domain.DocumentTypeOrder}
	req := dto.AddPaymentRequest{Amount: decimal.NewFromInt(200), Method: "transfer"}

	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockDocRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.DocumentID == doc.DocumentID && p.Amount.Equal(decimal.NewFromInt(200)) && p.Method == "transfer"
	})).Return(nil).Once()
	// The snapshot carries documentId so the payment shows up in the order's history.
	suite.mockAudit.On("Record", ctx, domain.AuditActionCreate, domain.AuditModelPayment, mock.AnythingOfType("string"), nil, mock.MatchedBy(func(v any) bool {
		p, ok := v.(domain.Payment)
		return ok && p.DocumentID == doc.DocumentID
	}), &actorID).Once()

	payment, err := suite.service.AddPayment(ctx, doc.DocumentID, req, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal(doc.DocumentID, payment.DocumentID)
	suite.mockAudit.AssertExpectations(suite.T())
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

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

type QuoteServiceTestSuite struct {
	suite.Suite
	mockDocRepo   *MockDocumentRepository
	mockLifecycle *MockLifecycleSvc
	service       portssvc.QuoteSvcFacade
}

func (suite *QuoteServiceTestSuite) SetupTest() {
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockLifecycle = new(MockLifecycleSvc)
	suite.service = services.NewQuoteService(suite.mockDocRepo, suite.mockLifecycle)
}

func (suite *QuoteServiceTestSuite) TestCreateQuote() {
	ctx := context.Background()
	actorID := uuid.NewString()
	req := dto.CreateQuoteRequest{
		ClientName:  "ACME",
		Description: "spring campaign",
		TotalAmount: decimal.NewFromInt(1500),
	}

	suite.mockLifecycle.On("CreateDocument", ctx, mock.MatchedBy(func(d *domain.Document) bool {
		return d.Type == domain.DocumentTypeQuote && d.ClientName == "ACME" && d.TotalAmount.Equal(decimal.NewFromInt(1500))
	}), actorID).Return(nil).Once()

	doc, err := suite.service.CreateQuote(ctx, req, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(doc)
	suite.Equal(domain.DocumentTypeQuote, doc.Type)
	suite.mockLifecycle.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestGetQuote_TypeMismatchIsNotFound() {
	ctx := context.Background()
	doc := &domain.Document{DocumentID: uuid.NewString(), Type: domain.DocumentTypeOrder}

	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	quote, err := suite.service.GetQuote(ctx, doc.DocumentID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(quote)
}

func (suite *QuoteServiceTestSuite) TestConvertQuote_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	quote := &domain.Document{
		DocumentID:  uuid.NewString(),
		Type:        domain.DocumentTypeQuote,
		Number:      "COT-2026-0009",
		Status:      domain.QuoteStatusAccepted,
		ClientName:  "ACME",
		TotalAmount: decimal.NewFromInt(1500),
		Version:     3,
	}

	suite.mockDocRepo.On("FindDocumentByID", ctx, quote.DocumentID).Return(quote, nil).Once()
	suite.mockLifecycle.On("CreateDocument", ctx, mock.MatchedBy(func(d *domain.Document) bool {
		return d.Type == domain.DocumentTypeOrder &&
			d.ClientName == "ACME" &&
			d.TotalAmount.Equal(decimal.NewFromInt(1500))
	}), actorID).Run(func(args mock.Arguments) {
		d := args.Get(1).(*domain.Document)
		d.Number = "OP-2026-0031"
		d.Status = domain.OrderStatusCreated
		d.Version = 1
	}).Return(nil).Once()
	suite.mockLifecycle.On("ChangeStatus", ctx, quote.DocumentID, domain.DocumentTypeQuote, domain.QuoteStatusConverted, "", actorID).
		Return(&portssvc.ChangeStatusResult{Outcome: domain.OutcomeApplied, Document: quote}, nil).Once()

	order, err := suite.service.ConvertQuote(ctx, quote.DocumentID, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(order)
	suite.Equal(domain.DocumentTypeOrder, order.Type)
	suite.Equal("OP-2026-0031", order.Number)
	suite.mockLifecycle.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestConvertQuote_NotAccepted() {
	ctx := context.Background()
	quote := &domain.Document{
		DocumentID: uuid.NewString(),
		Type:       domain.DocumentTypeQuote,
		Status:     domain.QuoteStatusSent,
	}

	suite.mockDocRepo.On("FindDocumentByID", ctx, quote.DocumentID).Return(quote, nil).Once()

	order, err := suite.service.ConvertQuote(ctx, quote.DocumentID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(order)
	suite.mockLifecycle.AssertNotCalled(suite.T(), "CreateDocument", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestConvertQuote_TransitionFailureRollsBackOrder() {
	ctx := context.Background()
	actorID := uuid.NewString()
	quote := &domain.Document{
		DocumentID: uuid.NewString(),
		Type:       domain.DocumentTypeQuote,
		Status:     domain.QuoteStatusAccepted,
		ClientName: "ACME",
	}

	var orderID string
	suite.mockDocRepo.On("FindDocumentByID", ctx, quote.DocumentID).Return(quote, nil).Once()
	suite.mockLifecycle.On("CreateDocument", ctx, mock.AnythingOfType("*domain.Document"), actorID).
		Run(func(args mock.Arguments) {
			d := args.Get(1).(*domain.Document)
			d.Status = domain.OrderStatusCreated
			orderID = d.DocumentID
		}).Return(nil).Once()
	suite.mockLifecycle.On("ChangeStatus", ctx, quote.DocumentID, domain.DocumentTypeQuote, domain.QuoteStatusConverted, "", actorID).
		Return(nil, apperrors.ErrConflict).Once()
	suite.mockLifecycle.On("DeleteDocument", ctx, mock.AnythingOfType("string"), domain.DocumentTypeOrder, actorID).
		Return(nil).Once()

	order, err := suite.service.ConvertQuote(ctx, quote.DocumentID, actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(order)
	suite.NotEmpty(orderID)
	suite.mockLifecycle.AssertExpectations(suite.T())
}

func TestQuoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QuoteServiceTestSuite))
}

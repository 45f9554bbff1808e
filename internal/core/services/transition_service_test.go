package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransitionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockDocumentRepository
	service  portssvc.TransitionSvcFacade
}

func (suite *TransitionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockDocumentRepository)
	suite.service = services.NewTransitionService(suite.mockRepo)
}

func (suite *TransitionServiceTestSuite) newOrder(status domain.DocumentStatus) *domain.Document {
	return &domain.Document{
		DocumentID: uuid.NewString(),
		Type:       domain.DocumentTypeOrder,
		Number:     "OP-2026-0001",
		Status:     status,
		Version:    3,
	}
}

func (suite *TransitionServiceTestSuite) TestAttemptTransition_Applied() {
	ctx := context.Background()
	actorID := uuid.NewString()
	doc := suite.newOrder(domain.OrderStatusCreated)

	suite.mockRepo.On("UpdateDocumentStatus", ctx, doc.DocumentID, domain.OrderStatusCreated, domain.OrderStatusInProduction, int64(3), actorID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	outcome, err := suite.service.AttemptTransition(ctx, doc, domain.OrderStatusInProduction, nil, actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeApplied, outcome.Kind)
	suite.Equal(domain.OrderStatusInProduction, doc.Status)
	suite.Equal(int64(4), doc.Version)
	suite.Equal(actorID, doc.LastUpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransitionServiceTestSuite) TestAttemptTransition_IllegalRejected() {
	ctx := context.Background()
	doc := suite.newOrder(domain.OrderStatusCreated)

	outcome, err := suite.service.AttemptTransition(ctx, doc, domain.OrderStatusDelivered, nil, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeRejected, outcome.Kind)
	suite.Require().Error(outcome.Reason)
	suite.ErrorIs(outcome.Reason, apperrors.ErrIllegalTransition)

	// The document is untouched and nothing was persisted.
	suite.Equal(domain.OrderStatusCreated, doc.Status)
	suite.Equal(int64(3), doc.Version)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateDocumentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransitionServiceTestSuite) TestAttemptTransition_GatedWithCapabilityApplies() {
	ctx := context.Background()
	actorID := uuid.NewString()
	doc := suite.newOrder(domain.OrderStatusCreated)

	suite.mockRepo.On("UpdateDocumentStatus", ctx, doc.DocumentID, domain.OrderStatusCreated, domain.OrderStatusCancelled, int64(3), actorID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	outcome, err := suite.service.AttemptTransition(ctx, doc, domain.OrderStatusCancelled, []string{domain.CapabilityCancelOrders}, actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeApplied, outcome.Kind)
	suite.Equal(domain.OrderStatusCancelled, doc.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransitionServiceTestSuite) TestAttemptTransition_DeferrableGateDefers() {
	ctx := context.Background()
	doc := suite.newOrder(domain.OrderStatusCreated)

	outcome, err := suite.service.AttemptTransition(ctx, doc, domain.OrderStatusCancelled, []string{"orders:read"}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeDeferred, outcome.Kind)
	suite.Equal(domain.CapabilityCancelOrders, outcome.RequiredCapability)
	suite.Nil(outcome.Reason)

	// Deferred outcomes never mutate or persist.
	suite.Equal(domain.OrderStatusCreated, doc.Status)
	suite.Equal(int64(3), doc.Version)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateDocumentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransitionServiceTestSuite) TestAttemptTransition_NonDeferrableGateRejects() {
	ctx := context.Background()
	doc := &domain.Document{
		DocumentID: uuid.NewString(),
		Type:       domain.DocumentTypeExpenseOrder,
		Status:     domain.ExpenseStatusAuthorized,
		Version:    1,
	}

	outcome, err := suite.service.AttemptTransition(ctx, doc, domain.ExpenseStatusPaid, nil, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeRejected, outcome.Kind)
	suite.Equal(domain.CapabilityPayExpenses, outcome.RequiredCapability)
	suite.ErrorIs(outcome.Reason, apperrors.ErrForbidden)
	suite.Equal(domain.ExpenseStatusAuthorized, doc.Status)
}

func (suite *TransitionServiceTestSuite) TestAttemptTransition_VersionGuardMiss() {
	ctx := context.Background()
	actorID := uuid.NewString()
	doc := suite.newOrder(domain.OrderStatusCreated)

	suite.mockRepo.On("UpdateDocumentStatus", ctx, doc.DocumentID, domain.OrderStatusCreated, domain.OrderStatusInProduction, int64(3), actorID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConflict).Once()

	outcome, err := suite.service.AttemptTransition(ctx, doc, domain.OrderStatusInProduction, nil, actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Empty(outcome.Kind)
	// The in-memory document keeps its stale state for the caller to reload.
	suite.Equal(domain.OrderStatusCreated, doc.Status)
	suite.Equal(int64(3), doc.Version)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestTransitionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransitionServiceTestSuite))
}

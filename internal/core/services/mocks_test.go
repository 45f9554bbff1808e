package services_test

import (
	"context"
	"time"

	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock SequenceRepository ---

type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) AllocateNext(ctx context.Context, docType domain.DocumentType, prefix string, year int) (domain.SequenceCounter, error) {
	args := m.Called(ctx, docType, prefix, year)
	return args.Get(0).(domain.SequenceCounter), args.Error(1)
}

// --- Mock AuditRepository ---

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveEntry(ctx context.Context, entry domain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) FindEntriesForRecord(ctx context.Context, recordID string) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

// --- Mock AuthorizationRepository ---

type MockAuthorizationRepository struct {
	mock.Mock
}

func (m *MockAuthorizationRepository) SaveRequest(ctx context.Context, req domain.AuthorizationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockAuthorizationRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.AuthorizationRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthorizationRequest), args.Error(1)
}

func (m *MockAuthorizationRepository) FindPendingByDocumentID(ctx context.Context, documentID string) (*domain.AuthorizationRequest, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthorizationRequest), args.Error(1)
}

func (m *MockAuthorizationRepository) ListPending(ctx context.Context, limit, offset int) ([]domain.AuthorizationRequest, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuthorizationRequest), args.Error(1)
}

func (m *MockAuthorizationRepository) MarkReviewed(ctx context.Context, requestID string, status domain.AuthorizationRequestStatus, reviewedBy string, notes *string, reviewedAt time.Time) error {
	args := m.Called(ctx, requestID, status, reviewedBy, notes, reviewedAt)
	return args.Error(0)
}

func (m *MockAuthorizationRepository) ReopenRequest(ctx context.Context, requestID string) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

// --- Mock DocumentRepository (facade + order details) ---

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListDocumentsByType(ctx context.Context, docType domain.DocumentType, limit int, nextToken *string) ([]domain.Document, *string, error) {
	args := m.Called(ctx, docType, limit, nextToken)
	var docs []domain.Document
	if args.Get(0) != nil {
		docs = args.Get(0).([]domain.Document)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return docs, token, args.Error(2)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, from, to domain.DocumentStatus, expectedVersion int64, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, documentID, from, to, expectedVersion, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteDocument(ctx context.Context, documentID string, status domain.DocumentStatus) error {
	args := m.Called(ctx, documentID, status)
	return args.Error(0)
}

func (m *MockDocumentRepository) SaveOrderItems(ctx context.Context, items []domain.OrderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindOrderItems(ctx context.Context, documentID string) ([]domain.OrderItem, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderItem), args.Error(1)
}

func (m *MockDocumentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindPayments(ctx context.Context, documentID string) ([]domain.Payment, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserSummaries(ctx context.Context, userIDs []string) (map[string]domain.ActorSummary, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ActorSummary), args.Error(1)
}

func (m *MockUserRepository) FindCapabilities(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepository) FindUserIDsWithCapability(ctx context.Context, capability string) ([]string, error) {
	args := m.Called(ctx, capability)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock service collaborators ---

type MockSequenceSvc struct {
	mock.Mock
}

func (m *MockSequenceSvc) NextNumber(ctx context.Context, docType domain.DocumentType, prefix string, year *int) (string, error) {
	args := m.Called(ctx, docType, prefix, year)
	return args.String(0), args.Error(1)
}

type MockAuditSvc struct {
	mock.Mock
}

func (m *MockAuditSvc) Record(ctx context.Context, action domain.AuditAction, model, recordID string, oldData, newData any, userID *string) {
	m.Called(ctx, action, model, recordID, oldData, newData, userID)
}

func (m *MockAuditSvc) HistoryFor(ctx context.Context, recordID string) ([]domain.AuditHistoryEntry, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditHistoryEntry), args.Error(1)
}

type MockTransitionSvc struct {
	mock.Mock
}

func (m *MockTransitionSvc) AttemptTransition(ctx context.Context, doc *domain.Document, requested domain.DocumentStatus, capabilities []string, actorID string) (domain.TransitionOutcome, error) {
	args := m.Called(ctx, doc, requested, capabilities, actorID)
	return args.Get(0).(domain.TransitionOutcome), args.Error(1)
}

type MockAuthorizationSvc struct {
	mock.Mock
}

func (m *MockAuthorizationSvc) CreateRequest(ctx context.Context, documentID string, requested domain.DocumentStatus, reason, requestedBy string) (*domain.AuthorizationRequest, error) {
	args := m.Called(ctx, documentID, requested, reason, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthorizationRequest), args.Error(1)
}

func (m *MockAuthorizationSvc) Approve(ctx context.Context, requestID, reviewedBy string, notes *string) (*domain.AuthorizationRequest, error) {
	args := m.Called(ctx, requestID, reviewedBy, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthorizationRequest), args.Error(1)
}

func (m *MockAuthorizationSvc) Reject(ctx context.Context, requestID, reviewedBy string, notes *string) (*domain.AuthorizationRequest, error) {
	args := m.Called(ctx, requestID, reviewedBy, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthorizationRequest), args.Error(1)
}

func (m *MockAuthorizationSvc) ListPending(ctx context.Context, limit, offset int) ([]domain.AuthorizationRequest, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuthorizationRequest), args.Error(1)
}

type MockCapabilitySvc struct {
	mock.Mock
}

func (m *MockCapabilitySvc) ActorHasCapability(ctx context.Context, actorID, capability string) (bool, error) {
	args := m.Called(ctx, actorID, capability)
	return args.Bool(0), args.Error(1)
}

func (m *MockCapabilitySvc) ActorCapabilities(ctx context.Context, actorID string) ([]string, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCapabilitySvc) ActorsWithCapability(ctx context.Context, capability string) ([]string, error) {
	args := m.Called(ctx, capability)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, actorIDs []string, title, message string) error {
	args := m.Called(ctx, actorIDs, title, message)
	return args.Error(0)
}

type MockLifecycleSvc struct {
	mock.Mock
}

func (m *MockLifecycleSvc) CreateDocument(ctx context.Context, doc *domain.Document, actorID string) error {
	args := m.Called(ctx, doc, actorID)
	return args.Error(0)
}

func (m *MockLifecycleSvc) ChangeStatus(ctx context.Context, documentID string, docType domain.DocumentType, requested domain.DocumentStatus, reason, actorID string) (*portssvc.ChangeStatusResult, error) {
	args := m.Called(ctx, documentID, docType, requested, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.ChangeStatusResult), args.Error(1)
}

func (m *MockLifecycleSvc) DeleteDocument(ctx context.Context, documentID string, docType domain.DocumentType, actorID string) error {
	args := m.Called(ctx, documentID, docType, actorID)
	return args.Error(0)
}

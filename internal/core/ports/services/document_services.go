package services

import (
	"context"

	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/dto"
)

// ChangeStatusResult is the outcome of a document status change. Document is
// the post-operation state; Request is set only when the change was deferred
// into an authorization request.
type ChangeStatusResult struct {
	Outcome  domain.OutcomeKind
	Document *domain.Document
	Request  *domain.AuthorizationRequest
}

// LifecycleSvcFacade coordinates numbering, transitions and auditing for every
// document module.
type LifecycleSvcFacade interface {
	// CreateDocument allocates the document number, persists the document in
	// its type's initial status and schedules the CREATE audit entry.
	CreateDocument(ctx context.Context, doc *domain.Document, actorID string) error

	// ChangeStatus loads the document, runs the transition engine with the
	// actor's capabilities and either persists the change, defers it into an
	// authorization request, or rejects it.
	ChangeStatus(ctx context.Context, documentID string, docType domain.DocumentType, requested domain.DocumentStatus, reason, actorID string) (*ChangeStatusResult, error)

	// DeleteDocument removes a document still in its initial status and
	// schedules the DELETE audit entry.
	DeleteDocument(ctx context.Context, documentID string, docType domain.DocumentType, actorID string) error
}

// OrderSvcFacade is the order module.
type OrderSvcFacade interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, actorID string) (*domain.Document, []domain.OrderItem, error)
	GetOrder(ctx context.Context, documentID string) (*domain.Document, []domain.OrderItem, []domain.Payment, error)
	ListOrders(ctx context.Context, limit int, nextToken *string) ([]domain.Document, *string, error)
	ChangeOrderStatus(ctx context.Context, documentID string, requested domain.DocumentStatus, reason, actorID string) (*ChangeStatusResult, error)
	DeleteOrder(ctx context.Context, documentID, actorID string) error
	AddPayment(ctx context.Context, documentID string, req dto.AddPaymentRequest, actorID string) (*domain.Payment, error)
}

// QuoteSvcFacade is the quote module.
type QuoteSvcFacade interface {
	CreateQuote(ctx context.Context, req dto.CreateQuoteRequest, actorID string) (*domain.Document, error)
	GetQuote(ctx context.Context, documentID string) (*domain.Document, error)
	ListQuotes(ctx context.Context, limit int, nextToken *string) ([]domain.Document, *string, error)
	ChangeQuoteStatus(ctx context.Context, documentID string, requested domain.DocumentStatus, reason, actorID string) (*ChangeStatusResult, error)
	DeleteQuote(ctx context.Context, documentID, actorID string) error

	// ConvertQuote turns an ACCEPTED quote into a production order: allocates a
	// new ORDER number and moves the quote to CONVERTED.
	ConvertQuote(ctx context.Context, documentID, actorID string) (*domain.Document, error)
}

// ExpenseOrderSvcFacade is the expense order module.
type ExpenseOrderSvcFacade interface {
	CreateExpenseOrder(ctx context.Context, req dto.CreateExpenseOrderRequest, actorID string) (*domain.Document, error)
	GetExpenseOrder(ctx context.Context, documentID string) (*domain.Document, error)
	ListExpenseOrders(ctx context.Context, limit int, nextToken *string) ([]domain.Document, *string, error)
	ChangeExpenseOrderStatus(ctx context.Context, documentID string, requested domain.DocumentStatus, reason, actorID string) (*ChangeStatusResult, error)
	DeleteExpenseOrder(ctx context.Context, documentID, actorID string) error
}

// UserSvcFacade manages backoffice users.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, actorID string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

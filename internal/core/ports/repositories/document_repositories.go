package repositories

import (
	"context"
	"time"

	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
)

// DocumentReader defines read operations for document rows.
type DocumentReader interface {
	// FindDocumentByID retrieves a document by its unique identifier.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocumentsByType retrieves a paginated list of documents of one type
	// using token-based pagination. Returns the documents, a token for the next
	// page (nil when exhausted), and an error.
	ListDocumentsByType(ctx context.Context, docType domain.DocumentType, limit int, nextToken *string) ([]domain.Document, *string, error)
}

// DocumentWriter defines write operations for document rows.
type DocumentWriter interface {
	// SaveDocument persists a freshly created document.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// UpdateDocumentStatus applies a status change guarded by the row version
	// the caller read. Returns apperrors.ErrConflict when the guard misses,
	// meaning another transition committed in between.
	UpdateDocumentStatus(ctx context.Context, documentID string, from, to domain.DocumentStatus, expectedVersion int64, updatedBy string, updatedAt time.Time) error

	// DeleteDocument removes a document still in the given status. Returns
	// apperrors.ErrConflict when the status no longer matches.
	DeleteDocument(ctx context.Context, documentID string, status domain.DocumentStatus) error
}

// OrderDetailRepository owns the order_items and payments tables.
type OrderDetailRepository interface {
	// SaveOrderItems inserts the items of an order in one batch.
	SaveOrderItems(ctx context.Context, items []domain.OrderItem) error

	// FindOrderItems returns the items of an order.
	FindOrderItems(ctx context.Context, documentID string) ([]domain.OrderItem, error)

	// SavePayment registers a payment against an order.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// FindPayments returns the payments registered against an order.
	FindPayments(ctx context.Context, documentID string) ([]domain.Payment, error)
}

// DocumentRepositoryFacade combines all document repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}

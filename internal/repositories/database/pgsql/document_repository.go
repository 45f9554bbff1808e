package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portsrepo "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/repositories"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/models"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/utils/mapping"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/utils/pagination"
)

type PgxDocumentRepository struct {
	BaseRepository
}

// NewPgxDocumentRepository creates the repository for document rows.
func NewPgxDocumentRepository(pool *pgxpool.Pool) *PgxDocumentRepository {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)
var _ portsrepo.OrderDetailRepository = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, doc_type, number, status, client_name, description, total_amount, version, created_at, created_by, last_updated_at, last_updated_by`

// SaveDocument persists a freshly created document. The unique index on number
// backstops the sequence allocator: a duplicate number can never be committed.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DocumentID,
		m.Type,
		m.Number,
		m.Status,
		m.ClientName,
		m.Description,
		m.TotalAmount,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "document number "+doc.Number+" already taken", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert document "+doc.DocumentID, err)
	}
	return nil
}

// FindDocumentByID retrieves a document by its unique identifier.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`

	var m models.Document
	err := r.Pool.QueryRow(ctx, query, documentID).Scan(
		&m.DocumentID,
		&m.Type,
		&m.Number,
		&m.Status,
		&m.ClientName,
		&m.Description,
		&m.TotalAmount,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document by ID "+documentID, err)
	}

	doc := mapping.ToDomainDocument(m)
	return &doc, nil
}

// ListDocumentsByType retrieves a page of documents of one type using
// token-based pagination, newest first.
func (r *PgxDocumentRepository) ListDocumentsByType(ctx context.Context, docType domain.DocumentType, limit int, nextToken *string) ([]domain.Document, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row decides whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + documentColumns + ` FROM documents WHERE doc_type = $1`
	orderByClause := `ORDER BY created_at DESC, document_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{string(docType)}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND (created_at, document_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query documents of type "+string(docType), err)
	}
	defer rows.Close()

	modelDocs := make([]models.Document, 0, fetchLimit)
	for rows.Next() {
		var m models.Document
		if scanErr := rows.Scan(
			&m.DocumentID,
			&m.Type,
			&m.Number,
			&m.Status,
			&m.ClientName,
			&m.Description,
			&m.TotalAmount,
			&m.Version,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan document row of type "+string(docType), scanErr)
		}
		modelDocs = append(modelDocs, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating document rows of type "+string(docType), err)
	}

	var nextTokenVal *string
	results := modelDocs
	if len(modelDocs) > limit {
		last := modelDocs[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.DocumentID)
		nextTokenVal = &token
		results = modelDocs[:limit]
	}

	docs := make([]domain.Document, len(results))
	for i, m := range results {
		docs[i] = mapping.ToDomainDocument(m)
	}
	return docs, nextTokenVal, nil
}

// UpdateDocumentStatus applies a transition guarded by both the status and the
// version the caller read. A miss on either guard means another transition
// committed in between; the caller must re-read and retry.
func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, from, to domain.DocumentStatus, expectedVersion int64, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE documents
		SET status = $3,
		    version = version + 1,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE document_id = $1 AND status = $2 AND version = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		documentID,
		string(from),
		string(to),
		updatedAt,
		updatedBy,
		expectedVersion,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for document "+documentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "document "+documentID+" changed since it was read", apperrors.ErrConflict)
	}
	return nil
}

// DeleteDocument removes a document still in the given status, together with
// its order lines and payments.
func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID string, status domain.DocumentStatus) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE document_id = $1;`, documentID); err != nil {
		return apperrors.NewAppError(500, "failed to delete items of document "+documentID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM payments WHERE document_id = $1;`, documentID); err != nil {
		return apperrors.NewAppError(500, "failed to delete payments of document "+documentID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM documents WHERE document_id = $1 AND status = $2;`, documentID, string(status))
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete document "+documentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "document "+documentID+" is not deletable in its current status", apperrors.ErrConflict)
	}

	return r.Commit(ctx, tx)
}

// SaveOrderItems inserts the lines of an order in one batch.
func (r *PgxDocumentRepository) SaveOrderItems(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO order_items (item_id, document_id, product, quantity, unit_price, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, item := range items {
		m := mapping.ToModelOrderItem(item)
		batch.Queue(query,
			m.ItemID,
			m.DocumentID,
			m.Product,
			m.Quantity,
			m.UnitPrice,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert order items for document "+items[0].DocumentID, err)
	}
	return nil
}

// FindOrderItems returns the lines of an order.
func (r *PgxDocumentRepository) FindOrderItems(ctx context.Context, documentID string) ([]domain.OrderItem, error) {
	query := `
		SELECT item_id, document_id, product, quantity, unit_price, created_at, created_by, last_updated_at, last_updated_by
		FROM order_items
		WHERE document_id = $1
		ORDER BY created_at, item_id;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for document "+documentID, err)
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var m models.OrderItem
		if err := rows.Scan(
			&m.ItemID,
			&m.DocumentID,
			&m.Product,
			&m.Quantity,
			&m.UnitPrice,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan order item row for document "+documentID, err)
		}
		items = append(items, mapping.ToDomainOrderItem(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating order item rows for document "+documentID, err)
	}

	return items, nil
}

// SavePayment registers a payment against an order.
func (r *PgxDocumentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (payment_id, document_id, amount, method, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PaymentID,
		m.DocumentID,
		m.Amount,
		m.Method,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment for document "+payment.DocumentID, err)
	}
	return nil
}

// FindPayments returns the payments registered against an order.
func (r *PgxDocumentRepository) FindPayments(ctx context.Context, documentID string) ([]domain.Payment, error) {
	query := `
		SELECT payment_id, document_id, amount, method, notes, created_at, created_by, last_updated_at, last_updated_by
		FROM payments
		WHERE document_id = $1
		ORDER BY created_at, payment_id;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for document "+documentID, err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var m models.Payment
		if err := rows.Scan(
			&m.PaymentID,
			&m.DocumentID,
			&m.Amount,
			&m.Method,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for document "+documentID, err)
		}
		payments = append(payments, mapping.ToDomainPayment(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for document "+documentID, err)
	}

	return payments, nil
}

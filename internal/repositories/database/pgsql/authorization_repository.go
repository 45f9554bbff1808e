package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portsrepo "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/repositories"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/models"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/utils/mapping"
)

type PgxAuthorizationRepository struct {
	BaseRepository
}

// NewPgxAuthorizationRepository creates the repository for authorization requests.
func NewPgxAuthorizationRepository(pool *pgxpool.Pool) portsrepo.AuthorizationRepository {
	return &PgxAuthorizationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuthorizationRepository = (*PgxAuthorizationRepository)(nil)

const authorizationRequestColumns = `request_id, document_id, requested_status, reason, status, requested_by, reviewed_by, review_notes, reviewed_at, created_at`

// SaveRequest inserts a new PENDING request. The partial unique index
// uq_authorization_requests_pending turns a second PENDING insert for the same
// document into a unique violation, surfaced as ErrDuplicate.
func (r *PgxAuthorizationRepository) SaveRequest(ctx context.Context, req domain.AuthorizationRequest) error {
	m := mapping.ToModelAuthorizationRequest(req)
	query := `
		INSERT INTO authorization_requests (` + authorizationRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID,
		m.DocumentID,
		m.RequestedStatus,
		m.Reason,
		m.Status,
		m.RequestedBy,
		m.ReviewedBy,
		m.ReviewNotes,
		m.ReviewedAt,
		m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "a pending authorization request already exists for document "+req.DocumentID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert authorization request for document "+req.DocumentID, err)
	}
	return nil
}

// FindRequestByID retrieves a request by its identifier.
func (r *PgxAuthorizationRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.AuthorizationRequest, error) {
	query := `SELECT ` + authorizationRequestColumns + ` FROM authorization_requests WHERE request_id = $1;`
	return r.scanOne(ctx, query, requestID)
}

// FindPendingByDocumentID returns the PENDING request for a document.
func (r *PgxAuthorizationRepository) FindPendingByDocumentID(ctx context.Context, documentID string) (*domain.AuthorizationRequest, error) {
	query := `SELECT ` + authorizationRequestColumns + ` FROM authorization_requests WHERE document_id = $1 AND status = 'PENDING';`
	return r.scanOne(ctx, query, documentID)
}

func (r *PgxAuthorizationRepository) scanOne(ctx context.Context, query string, arg any) (*domain.AuthorizationRequest, error) {
	var m models.AuthorizationRequest
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.RequestID,
		&m.DocumentID,
		&m.RequestedStatus,
		&m.Reason,
		&m.Status,
		&m.RequestedBy,
		&m.ReviewedBy,
		&m.ReviewNotes,
		&m.ReviewedAt,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find authorization request", err)
	}
	req := mapping.ToDomainAuthorizationRequest(m)
	return &req, nil
}

// ListPending returns PENDING requests, oldest first.
func (r *PgxAuthorizationRepository) ListPending(ctx context.Context, limit, offset int) ([]domain.AuthorizationRequest, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + authorizationRequestColumns + `
		FROM authorization_requests
		WHERE status = 'PENDING'
		ORDER BY created_at, request_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query pending authorization requests", err)
	}
	defer rows.Close()

	requests := []domain.AuthorizationRequest{}
	for rows.Next() {
		var m models.AuthorizationRequest
		if err := rows.Scan(
			&m.RequestID,
			&m.DocumentID,
			&m.RequestedStatus,
			&m.Reason,
			&m.Status,
			&m.RequestedBy,
			&m.ReviewedBy,
			&m.ReviewNotes,
			&m.ReviewedAt,
			&m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan authorization request row", err)
		}
		requests = append(requests, mapping.ToDomainAuthorizationRequest(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating authorization request rows", err)
	}

	return requests, nil
}

// MarkReviewed resolves a request only while it is still PENDING. A zero
// rows-affected result means another reviewer got there first (or the request
// never existed); both surface as ErrConflict so resolution happens exactly once.
func (r *PgxAuthorizationRepository) MarkReviewed(ctx context.Context, requestID string, status domain.AuthorizationRequestStatus, reviewedBy string, notes *string, reviewedAt time.Time) error {
	query := `
		UPDATE authorization_requests
		SET status = $2,
		    reviewed_by = $3,
		    review_notes = $4,
		    reviewed_at = $5
		WHERE request_id = $1 AND status = 'PENDING';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, requestID, string(status), reviewedBy, notes, reviewedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark authorization request "+requestID+" reviewed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "authorization request "+requestID+" is not pending", apperrors.ErrConflict)
	}
	return nil
}

// ReopenRequest reverts a resolved request to PENDING, clearing the review
// stamps. Compensation path for a deferred transition that could not be applied.
func (r *PgxAuthorizationRepository) ReopenRequest(ctx context.Context, requestID string) error {
	query := `
		UPDATE authorization_requests
		SET status = 'PENDING',
		    reviewed_by = NULL,
		    review_notes = NULL,
		    reviewed_at = NULL
		WHERE request_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, requestID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to reopen authorization request "+requestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("authorization request " + requestID + " not found for reopen")
	}
	return nil
}

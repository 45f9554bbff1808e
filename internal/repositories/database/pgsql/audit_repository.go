package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portsrepo "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/repositories"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/models"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/utils/mapping"
)

type PgxAuditRepository struct {
	BaseRepository
}

// NewPgxAuditRepository creates the repository for the append-only audit log.
func NewPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// SaveEntry appends one audit entry. There is no update path anywhere in this
// package; audit rows are immutable once written.
func (r *PgxAuditRepository) SaveEntry(ctx context.Context, entry domain.AuditLogEntry) error {
	m, err := mapping.ToModelAuditLog(entry)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal audit snapshot for "+entry.RecordID, err)
	}

	query := `
		INSERT INTO audit_log (audit_id, model, record_id, action, old_data, new_data, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.AuditID,
		m.Model,
		m.RecordID,
		m.Action,
		m.OldData,
		m.NewData,
		m.UserID,
		m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entry for "+entry.RecordID, err)
	}
	return nil
}

// FindEntriesForRecord returns the chronological trail of a record. Besides
// direct record_id matches it picks up entries of related models (order items,
// payments) whose snapshots carry the record's ID under the denormalized
// documentId key.
func (r *PgxAuditRepository) FindEntriesForRecord(ctx context.Context, recordID string) ([]domain.AuditLogEntry, error) {
	query := `
		SELECT audit_id, model, record_id, action, old_data, new_data, user_id, created_at
		FROM audit_log
		WHERE record_id = $1
		   OR old_data->>'documentId' = $1
		   OR new_data->>'documentId' = $1
		ORDER BY created_at, audit_id;
	`
	rows, err := r.Pool.Query(ctx, query, recordID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit entries for record "+recordID, err)
	}
	defer rows.Close()

	entries := []domain.AuditLogEntry{}
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(
			&m.AuditID,
			&m.Model,
			&m.RecordID,
			&m.Action,
			&m.OldData,
			&m.NewData,
			&m.UserID,
			&m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit row for record "+recordID, err)
		}
		entry, err := mapping.ToDomainAuditLog(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to unmarshal audit snapshot for record "+recordID, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit rows for record "+recordID, err)
	}

	return entries, nil
}

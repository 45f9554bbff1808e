package repositories

import (
	"context"

	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
)

// AuditRepository owns the append-only audit_log table.
type AuditRepository interface {
	// SaveEntry appends one audit entry. Entries are immutable once written.
	SaveEntry(ctx context.Context, entry domain.AuditLogEntry) error

	// FindEntriesForRecord returns all entries whose record_id matches, plus
	// entries of related models whose snapshots reference the record through a
	// denormalized documentId key, ordered chronologically.
	FindEntriesForRecord(ctx context.Context, recordID string) ([]domain.AuditLogEntry, error)
}

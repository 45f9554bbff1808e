package repositories

import (
	"context"

	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
)

// SequenceRepository owns the sequence_counters table.
type SequenceRepository interface {
	// AllocateNext atomically advances the counter for a document type and
	// returns the issued state. When the stored year differs from year the
	// counter resets to 1 for the new year; otherwise it increments. The
	// reset-or-increment decision and the write happen in a single atomic
	// statement so concurrent callers never receive the same number.
	AllocateNext(ctx context.Context, docType domain.DocumentType, prefix string, year int) (domain.SequenceCounter, error)
}

package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portsrepo "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/repositories"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/models"
)

// maxAllocateRetries bounds the transparent retry loop on transient conflicts.
// At READ COMMITTED the single-statement upsert serializes on the row lock and
// never hits these codes; the retries only matter if the pool ever runs at
// SERIALIZABLE, where 40001 can surface.
const maxAllocateRetries = 3

type PgxSequenceRepository struct {
	BaseRepository
}

// NewPgxSequenceRepository creates the repository for sequence counters.
func NewPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// AllocateNext advances the counter for a document type in one conditional
// upsert. The year-guarded CASE makes reset-vs-increment a property of the
// statement itself, so there is no window between deciding and writing:
// concurrent callers serialize on the row and each RETURNING sees a distinct
// last_number.
func (r *PgxSequenceRepository) AllocateNext(ctx context.Context, docType domain.DocumentType, prefix string, year int) (domain.SequenceCounter, error) {
	query := `
		INSERT INTO sequence_counters (counter_type, prefix, year, last_number)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (counter_type) DO UPDATE
		SET last_number = CASE
				WHEN sequence_counters.year = EXCLUDED.year THEN sequence_counters.last_number + 1
				ELSE 1
			END,
			year = EXCLUDED.year,
			prefix = EXCLUDED.prefix
		RETURNING counter_type, prefix, year, last_number;
	`

	var m models.SequenceCounter
	var lastErr error
	for attempt := 0; attempt <= maxAllocateRetries; attempt++ {
		err := r.Pool.QueryRow(ctx, query, string(docType), prefix, year).Scan(
			&m.CounterType,
			&m.Prefix,
			&m.Year,
			&m.LastNumber,
		)
		if err == nil {
			return domain.SequenceCounter{
				Type:       domain.DocumentType(m.CounterType),
				Prefix:     m.Prefix,
				Year:       m.Year,
				LastNumber: m.LastNumber,
			}, nil
		}
		if !isRetryableWriteConflict(err) {
			return domain.SequenceCounter{}, apperrors.NewAppError(500, "failed to allocate sequence number for "+string(docType), err)
		}
		lastErr = err
	}

	return domain.SequenceCounter{}, apperrors.NewAppError(500, "sequence allocation kept conflicting for "+string(docType), lastErr)
}

package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portsrepo "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/repositories"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/middleware"
)

// SequenceService issues gap-free, collision-free document numbers per
// (document type, year). All mutual exclusion lives in the repository's
// conditional upsert; this service only resolves defaults and formats.
type SequenceService struct {
	sequenceRepo portsrepo.SequenceRepository
	// now is swappable for year-boundary tests.
	now func() time.Time
}

// NewSequenceService creates a new SequenceService.
func NewSequenceService(repo portsrepo.SequenceRepository) *SequenceService {
	return &SequenceService{sequenceRepo: repo, now: time.Now}
}

var _ portssvc.SequenceSvcFacade = (*SequenceService)(nil)

// NextNumber allocates and formats the next number for a document type.
// prefix defaults to the type's configured prefix when empty; year defaults to
// the current calendar year when nil.
func (s *SequenceService) NextNumber(ctx context.Context, docType domain.DocumentType, prefix string, year *int) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if prefix == "" {
		prefix = domain.SequencePrefix(docType)
	}
	effectiveYear := s.now().Year()
	if year != nil {
		effectiveYear = *year
	}

	counter, err := s.sequenceRepo.AllocateNext(ctx, docType, prefix, effectiveYear)
	if err != nil {
		logger.Error("Failed to allocate sequence number", slog.String("error", err.Error()), slog.String("doc_type", string(docType)))
		return "", err
	}

	number := domain.FormatDocumentNumber(counter.Prefix, counter.Year, counter.LastNumber)
	logger.Debug("Sequence number allocated", slog.String("doc_type", string(docType)), slog.String("number", number))
	return number, nil
}

package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portsrepo "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/repositories"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/middleware"
)

// redactionMarker replaces the value of any sensitive field before persistence.
const redactionMarker = "[REDACTED]"

// sensitiveKeyFragments flags snapshot keys to redact, matched
// case-insensitively as substrings.
var sensitiveKeyFragments = []string{"password", "token", "secret", "apikey", "api_key", "credential"}

// defaultAuditWriteTimeout bounds the detached audit write.
const defaultAuditWriteTimeout = 10 * time.Second

// AuditService records mutations without ever blocking or failing the
// business operation that triggered them, and serves enriched history queries.
type AuditService struct {
	auditRepo    portsrepo.AuditRepository
	userRepo     portsrepo.UserRepository
	writeTimeout time.Duration
	now          func() time.Time
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditRepository, userRepo portsrepo.UserRepository) *AuditService {
	return &AuditService{
		auditRepo:    auditRepo,
		userRepo:     userRepo,
		writeTimeout: defaultAuditWriteTimeout,
		now:          time.Now,
	}
}

var _ portssvc.AuditSvcFacade = (*AuditService)(nil)

// Record schedules an audit write and returns immediately. The write runs in
// its own goroutine on a context detached from the caller's cancellation, so a
// request that times out after its mutation committed still gets its entry
// attempted. The single write attempt's failure is logged and discarded.
func (s *AuditService) Record(ctx context.Context, action domain.AuditAction, model, recordID string, oldData, newData any, userID *string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry := domain.AuditLogEntry{
		AuditID:   uuid.NewString(),
		Model:     model,
		RecordID:  recordID,
		Action:    action,
		OldData:   s.snapshot(oldData),
		NewData:   s.snapshot(newData),
		UserID:    userID,
		CreatedAt: s.now(),
	}

	detached := context.WithoutCancel(ctx)
	go func() {
		writeCtx, cancel := context.WithTimeout(detached, s.writeTimeout)
		defer cancel()

		if err := s.auditRepo.SaveEntry(writeCtx, entry); err != nil {
			logger.Error("Audit write failed",
				slog.String("error", err.Error()),
				slog.String("model", model),
				slog.String("record_id", recordID),
				slog.String("action", string(action)),
			)
		}
	}()
}

// HistoryFor returns the chronological audit trail of a record, each entry
// enriched with a resolved actor summary or nil for system actions.
func (s *AuditService) HistoryFor(ctx context.Context, recordID string) ([]domain.AuditHistoryEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, err := s.auditRepo.FindEntriesForRecord(ctx, recordID)
	if err != nil {
		logger.Error("Failed to load audit entries", slog.String("error", err.Error()), slog.String("record_id", recordID))
		return nil, err
	}

	userIDs := make([]string, 0, len(entries))
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.UserID != nil && !seen[*entry.UserID] {
			seen[*entry.UserID] = true
			userIDs = append(userIDs, *entry.UserID)
		}
	}

	summaries, err := s.userRepo.FindUserSummaries(ctx, userIDs)
	if err != nil {
		logger.Error("Failed to resolve audit actors", slog.String("error", err.Error()), slog.String("record_id", recordID))
		return nil, err
	}

	history := make([]domain.AuditHistoryEntry, len(entries))
	for i, entry := range entries {
		history[i] = domain.AuditHistoryEntry{AuditLogEntry: entry}
		if entry.UserID != nil {
			if summary, ok := summaries[*entry.UserID]; ok {
				history[i].Actor = &summary
			}
		}
	}

	return history, nil
}

// snapshot converts a value into a reduced, redacted map ready for the JSONB
// column. Nested collections are replaced by their counts so high-churn
// documents produce small, comparable rows; sensitive fields are redacted
// uniformly regardless of model.
func (s *AuditService) snapshot(value any) map[string]any {
	if value == nil {
		return nil
	}
	if m, ok := value.(map[string]any); ok {
		return summarize(redact(m))
	}

	data, err := json.Marshal(value)
	if err != nil {
		// A snapshot that cannot be serialized must not sink the audit entry.
		return map[string]any{"snapshotError": err.Error()}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{"snapshotError": err.Error()}
	}
	return summarize(redact(m))
}

// summarize replaces top-level arrays with "<key>Count" entries.
func summarize(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		if list, ok := value.([]any); ok {
			out[key+"Count"] = len(list)
			continue
		}
		out[key] = value
	}
	return out
}

// redact walks the map and replaces sensitive values with the redaction marker.
func redact(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		if isSensitiveKey(key) {
			out[key] = redactionMarker
			continue
		}
		if nested, ok := value.(map[string]any); ok {
			out[key] = redact(nested)
			continue
		}
		out[key] = value
	}
	return out
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, fragment := range sensitiveKeyFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

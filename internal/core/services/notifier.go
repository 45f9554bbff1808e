package services

import (
	"context"
	"log/slog"

	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/middleware"
)

// LogNotifier delivers notifications to the structured log. It stands in for a
// real channel (email, push) behind the Notifier port.
type LogNotifier struct{}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

var _ portssvc.Notifier = (*LogNotifier)(nil)

// Notify logs one line per recipient and never fails.
func (n *LogNotifier) Notify(ctx context.Context, actorIDs []string, title, message string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	for _, actorID := range actorIDs {
		logger.Info("Notification",
			slog.String("recipient", actorID),
			slog.String("title", title),
			slog.String("message", message),
		)
	}
	return nil
}

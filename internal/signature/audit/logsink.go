package audit

import (
	"context"
	"log/slog"
)

// LogSink writes events to the process log. Used in dev mode and whenever no
// Kafka brokers are configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Write(ctx context.Context, e Event) error {
	s.logger.InfoContext(ctx, "signature audit",
		"event_id", e.ID,
		"type", e.Type,
		"email", e.Email,
		"document_id", e.DocumentID,
		"outcome", e.Outcome,
		"device", e.Device,
	)
	return nil
}

package notification

import (
	"context"
	"log/slog"
)

// LogTransport writes jobs to the structured log. For local runs.
type LogTransport struct {
	logger *slog.Logger
}

func NewLogTransport(logger *slog.Logger) *LogTransport {
	return &LogTransport{logger: logger}
}

func (t *LogTransport) Deliver(ctx context.Context, job EmailJob) error {
	t.logger.InfoContext(ctx, "notification",
		"message_id", job.MessageID,
		"template", job.Template,
		"to", job.To,
		"user_id", job.UserID,
		"data", job.Data)
	return nil
}

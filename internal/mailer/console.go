package mailer

import (
	"context"
	"log/slog"
	"time"
)

// ConsoleMailer replaces the email API in development: it logs the message,
// waits long enough to feel like a network call, and always succeeds.
type ConsoleMailer struct {
	logger *slog.Logger
	delay  time.Duration
}

func NewConsoleMailer(logger *slog.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger, delay: 400 * time.Millisecond}
}

func (m *ConsoleMailer) Send(ctx context.Context, msg Message) error {
	m.logger.InfoContext(ctx, "dev mailer: verification code",
		"to", msg.ToEmail,
		"name", msg.ToName,
		"document", msg.DocumentName,
		"code", msg.Code,
		"expires_in", msg.ExpiresIn,
	)

	select {
	case <-time.After(m.delay):
	case <-ctx.Done():
	}
	return nil
}

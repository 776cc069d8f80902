// Package notify delivers best-effort email notifications. Delivery
// failures are the caller's problem to log, never to propagate.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Mailer sends one plain-text message to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ConsoleMailer logs messages instead of delivering them. Used in
// development and tests.
type ConsoleMailer struct {
	logger *zap.Logger
}

func NewConsoleMailer(logger *zap.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger}
}

func (m *ConsoleMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info("Mail (console)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// Package notify shows messages to the console user.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Notifier surfaces user-visible messages.
type Notifier interface {
	// Error shows a short failure message.
	Error(ctx context.Context, message string)

	// Success shows a titled notification.
	Success(ctx context.Context, title, content string)
}

var _ Notifier = LogNotifier{}

// LogNotifier writes notifications to a zerolog logger, which on the CLI is
// a console writer.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) LogNotifier {
	return LogNotifier{logger: logger.With().Str("component", "notify").Logger()}
}

func (n LogNotifier) Error(_ context.Context, message string) {
	n.logger.Error().Msg(message)
}

func (n LogNotifier) Success(_ context.Context, title, content string) {
	n.logger.Info().Str("title", title).Msg(content)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Error(context.Context, string) {}

func (Nop) Success(context.Context, string, string) {}

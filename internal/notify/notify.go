package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Notifier is the fire-and-forget sink for infraction reports. Failures are
// logged by the caller and never propagated into the moderation decision.
type Notifier interface {
	NotifyInfraction(ctx context.Context, senderName, originalText string, at time.Time) error
}

// LogNotifier reports infractions to the process log. Production deployments
// swap in a mail-backed sink behind the same interface.
type LogNotifier struct {
	log *zerolog.Logger
}

// NewLogNotifier builds a notifier writing to the given logger.
func NewLogNotifier(logger *zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: logger}
}

// NotifyInfraction records one detected infraction with the original,
// unsanitized text.
func (n *LogNotifier) NotifyInfraction(_ context.Context, senderName, originalText string, at time.Time) error {
	n.log.Info().
		Str("sender", senderName).
		Str("original_text", originalText).
		Time("at", at).
		Msg("profanity infraction reported")
	return nil
}

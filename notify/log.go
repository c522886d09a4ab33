package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"classicmatch"
)

// LogNotifier writes codes to the structured log instead of sending mail.
// Development only: it prints the plaintext code.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLog returns a notifier writing to the given logger.
func NewLog(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendCode implements classicmatch.Notifier.
func (n *LogNotifier) SendCode(_ context.Context, account classicmatch.AccountRecord, purpose classicmatch.CodePurpose, code string, expiresAt time.Time) error {
	n.logger.Info().
		Str("email", account.Email).
		Str("purpose", string(purpose)).
		Str("code", code).
		Time("expires_at", expiresAt).
		Msg("one-time code issued")
	return nil
}

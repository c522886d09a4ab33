package classicmatch

import (
	"context"
	"time"

	"classicmatch/password"
	"classicmatch/session"
)

// Engine is the session and credential core: signup, one-time code
// verification, login, password reset, and cookie minting. Build it once via
// [Builder] and share it; all methods are safe for concurrent use.
type Engine struct {
	config   Config
	accounts AccountProvider
	codes    CodeStore
	notifier Notifier
	hasher   *password.Scrypt
	throttle *loginLimiter
	audit    *auditDispatcher
	now      func() time.Time

	sessions      *session.Codec
	adminSessions *session.AdminCodec

	// decoyHash is verified against on unknown-email logins.
	decoyHash string
	// adminHash is the scrypt hash of the configured admin password; empty
	// when the admin flow is disabled.
	adminHash string
}

// Close flushes and stops the audit dispatcher. Call on shutdown.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports how many audit events were discarded because the
// dispatch buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.Dropped()
}

func (e *Engine) ready() bool {
	return e != nil && e.accounts != nil && e.codes != nil && e.hasher != nil
}

func (e *Engine) emit(ctx context.Context, event AuditEvent) {
	if e.audit == nil {
		return
	}
	event.Timestamp = e.now()
	event.IP = clientIPFromContext(ctx)
	e.audit.Emit(ctx, event)
}

package classicmatch

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"classicmatch/session"
)

// LoginResult carries everything the transport layer needs after a
// successful login: the cookie to set and the account it belongs to.
type LoginResult struct {
	Cookie  session.Cookie
	Account AccountRecord
}

// Login authenticates an email/password pair and mints a member session.
// Unknown email and wrong password both return ErrInvalidCredentials with
// nothing to distinguish them; the unknown-email path still runs a password
// verification against a decoy hash.
func (e *Engine) Login(ctx context.Context, email, plaintext string) (*LoginResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plaintext == "" {
		return nil, ErrInvalidCredentials
	}

	if err := e.throttle.Check(ctx, email, clientIPFromContext(ctx)); err != nil {
		if errors.Is(err, ErrLoginRateLimited) {
			e.emit(ctx, AuditEvent{
				EventType: EventLoginThrottled,
				Email:     email,
			})
		}
		return nil, err
	}

	account, err := e.accounts.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			e.hasher.Verify(plaintext, e.decoyHash)
			e.emit(ctx, AuditEvent{
				EventType: EventLoginFailure,
				Email:     email,
				Error:     "unknown email",
			})
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !e.hasher.Verify(plaintext, account.PasswordHash) {
		e.emit(ctx, AuditEvent{
			EventType: EventLoginFailure,
			AccountID: account.ID,
			Email:     email,
			Error:     "wrong password",
		})
		return nil, ErrInvalidCredentials
	}

	cookie, err := e.sessions.Create(account.ID, account.Email)
	if err != nil {
		return nil, err
	}

	e.emit(ctx, AuditEvent{
		EventType: EventLoginSuccess,
		AccountID: account.ID,
		Email:     email,
		Success:   true,
	})

	return &LoginResult{Cookie: cookie, Account: *account}, nil
}

// AdminLogin authenticates against the single configured admin credential
// pair and mints an admin session. Returns ErrAdminNotConfigured when no
// pair was configured, ErrInvalidCredentials on any mismatch.
func (e *Engine) AdminLogin(ctx context.Context, email, plaintext string) (session.Cookie, error) {
	if !e.ready() {
		return session.Cookie{}, ErrEngineNotReady
	}
	if e.config.Admin.Email == "" || e.adminHash == "" {
		return session.Cookie{}, ErrAdminNotConfigured
	}

	email = strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(strings.ToLower(e.config.Admin.Email))) == 1
	passwordOK := e.hasher.Verify(plaintext, e.adminHash)

	if !emailOK || !passwordOK {
		e.emit(ctx, AuditEvent{
			EventType: EventAdminLoginFailure,
			Email:     email,
		})
		return session.Cookie{}, ErrInvalidCredentials
	}

	cookie, err := e.adminSessions.Create()
	if err != nil {
		return session.Cookie{}, err
	}

	e.emit(ctx, AuditEvent{
		EventType: EventAdminLoginSuccess,
		Email:     email,
		Success:   true,
	})

	return cookie, nil
}

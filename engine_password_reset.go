package classicmatch

import (
	"context"
	"fmt"
	"strings"
)

// RequestPasswordReset issues a reset code for the account behind the
// email. Unlike login, this flow reveals absence: an unknown email returns
// ErrAccountNotFound so the form can tell the user to sign up instead.
func (e *Engine) RequestPasswordReset(ctx context.Context, email string) error {
	if !e.ready() {
		return ErrEngineNotReady
	}

	account, err := e.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}

	if err := e.issueCode(ctx, account, PurposeReset, EventCodeIssued); err != nil {
		return err
	}

	e.emit(ctx, AuditEvent{
		EventType: EventResetRequested,
		AccountID: account.ID,
		Email:     account.Email,
		Success:   true,
	})

	return nil
}

// ResendResetCode re-delivers the reset code, subject to the resend
// cooldown.
func (e *Engine) ResendResetCode(ctx context.Context, email string) error {
	if !e.ready() {
		return ErrEngineNotReady
	}

	account, err := e.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}

	return e.resendCode(ctx, account, PurposeReset)
}

// CompletePasswordReset verifies the reset code, replaces the stored
// credential, consumes the code, and logs the member in. When the account
// provider implements Transactor the password update and code consumption
// commit atomically.
func (e *Engine) CompletePasswordReset(ctx context.Context, email, code, newPassword string) (*LoginResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	if len(newPassword) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	account, err := e.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}

	hash, err := e.hasher.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if tx, ok := e.accounts.(Transactor); ok {
		err = tx.InTransaction(ctx, func(accounts AccountProvider, codes CodeStore) error {
			if err := e.checkResetCode(ctx, codes, account.ID, code); err != nil {
				return err
			}
			if err := accounts.UpdatePasswordHash(ctx, account.ID, hash); err != nil {
				return err
			}
			return codes.MarkConsumed(ctx, account.ID, PurposeReset)
		})
	} else {
		if _, verr := e.verifyCode(ctx, account.ID, PurposeReset, code); verr != nil {
			return nil, verr
		}
		err = e.accounts.UpdatePasswordHash(ctx, account.ID, hash)
	}
	if err != nil {
		return nil, err
	}

	cookie, err := e.sessions.Create(account.ID, account.Email)
	if err != nil {
		return nil, err
	}

	e.emit(ctx, AuditEvent{
		EventType: EventResetCompleted,
		AccountID: account.ID,
		Email:     account.Email,
		Success:   true,
	})

	return &LoginResult{Cookie: cookie, Account: *account}, nil
}

// checkResetCode is the transactional variant of verifyCode: it validates
// without consuming, leaving consumption to the caller's transaction.
func (e *Engine) checkResetCode(ctx context.Context, codes CodeStore, accountID, code string) error {
	rec, err := codes.Get(ctx, accountID, PurposeReset)
	if err != nil {
		return err
	}

	if rec.Consumed {
		return ErrCodeConsumed
	}
	if !e.now().Before(rec.ExpiresAt) {
		return ErrCodeExpired
	}
	if code == "" || !e.hasher.Verify(code, rec.CodeHash) {
		return ErrCodeInvalid
	}

	return nil
}

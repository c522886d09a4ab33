package classicmatch

import (
	"context"
	"strings"

	"classicmatch/session"
)

// ConfirmResult carries the verified account and the session minted by the
// auto-login that follows a successful confirmation.
type ConfirmResult struct {
	Cookie  session.Cookie
	Account AccountRecord
}

// IssueConfirmationCode mints and delivers a fresh confirmation code for
// the account, overwriting any outstanding one. Signup calls this
// implicitly; it is exposed for hosts that create accounts out of band.
func (e *Engine) IssueConfirmationCode(ctx context.Context, accountID string) error {
	if !e.ready() {
		return ErrEngineNotReady
	}

	account, err := e.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	return e.issueCode(ctx, account, PurposeConfirmation, EventCodeIssued)
}

// ConfirmEmail verifies the submitted confirmation code, marks the account
// verified, and logs the member in. The code is consumed on success; a
// second submission of the same code fails with ErrCodeConsumed.
func (e *Engine) ConfirmEmail(ctx context.Context, email, code string) (*ConfirmResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	account, err := e.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}

	if _, err := e.verifyCode(ctx, account.ID, PurposeConfirmation, code); err != nil {
		return nil, err
	}

	if !account.Verified {
		if err := e.accounts.MarkVerified(ctx, account.ID); err != nil {
			return nil, err
		}
		account.Verified = true
	}

	cookie, err := e.sessions.Create(account.ID, account.Email)
	if err != nil {
		return nil, err
	}

	e.emit(ctx, AuditEvent{
		EventType: EventEmailConfirmed,
		AccountID: account.ID,
		Email:     account.Email,
		Success:   true,
	})

	return &ConfirmResult{Cookie: cookie, Account: *account}, nil
}

// ResendConfirmationCode re-delivers the confirmation code for the account
// behind the email. Inside the cooldown window the call succeeds without
// re-issuing; outside it the outstanding code is replaced.
func (e *Engine) ResendConfirmationCode(ctx context.Context, email string) error {
	if !e.ready() {
		return ErrEngineNotReady
	}

	account, err := e.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}

	return e.resendCode(ctx, account, PurposeConfirmation)
}

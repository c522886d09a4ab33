package classicmatch

import (
	"context"
	"errors"
	"fmt"
)

// issueCode generates, stores, and delivers a fresh one-time code for the
// account and purpose. Any prior outstanding code for the pair is
// overwritten. Delivery failure is audited, not returned: the code is
// persisted either way and a resend can pick it up.
func (e *Engine) issueCode(ctx context.Context, account *AccountRecord, purpose CodePurpose, eventType string) error {
	cfg := codeConfigFor(e.config, purpose)

	code, err := generateCode(cfg.Digits)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	hash, err := e.hasher.Hash(code)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	now := e.now()
	rec := CodeRecord{
		AccountID: account.ID,
		Email:     account.Email,
		Purpose:   purpose,
		CodeHash:  hash,
		IssuedAt:  now,
		ExpiresAt: now.Add(cfg.TTL),
	}

	if err := e.codes.Upsert(ctx, rec); err != nil {
		return err
	}

	e.emit(ctx, AuditEvent{
		EventType: eventType,
		AccountID: account.ID,
		Email:     account.Email,
		Success:   true,
		Metadata:  map[string]string{"purpose": string(purpose)},
	})

	if err := e.notifier.SendCode(ctx, *account, purpose, code, rec.ExpiresAt); err != nil {
		e.emit(ctx, AuditEvent{
			EventType: EventCodeDeliveryError,
			AccountID: account.ID,
			Email:     account.Email,
			Error:     err.Error(),
			Metadata:  map[string]string{"purpose": string(purpose)},
		})
	}

	return nil
}

// resendCode re-issues the outstanding code unless it is younger than the
// purpose's cooldown, in which case the call silently succeeds without
// touching storage.
func (e *Engine) resendCode(ctx context.Context, account *AccountRecord, purpose CodePurpose) error {
	cfg := codeConfigFor(e.config, purpose)

	existing, err := e.codes.Get(ctx, account.ID, purpose)
	switch {
	case errors.Is(err, ErrCodeNotFound):
		// Nothing outstanding; fall through to a fresh issue.
	case err != nil:
		return err
	case !existing.Consumed && e.now().Sub(existing.IssuedAt) < cfg.ResendCooldown:
		e.emit(ctx, AuditEvent{
			EventType: EventCodeResendCooled,
			AccountID: account.ID,
			Email:     account.Email,
			Success:   true,
			Metadata:  map[string]string{"purpose": string(purpose)},
		})
		return nil
	}

	return e.issueCode(ctx, account, purpose, EventCodeResent)
}

// verifyCode checks the submitted code against the outstanding record and
// consumes it on success. Error order: absent record, already consumed,
// expired, then mismatch. Consumption makes every code single use.
func (e *Engine) verifyCode(ctx context.Context, accountID string, purpose CodePurpose, code string) (*CodeRecord, error) {
	rec, err := e.codes.Get(ctx, accountID, purpose)
	if err != nil {
		return nil, err
	}

	if rec.Consumed {
		return nil, ErrCodeConsumed
	}
	if !e.now().Before(rec.ExpiresAt) {
		return nil, ErrCodeExpired
	}
	if code == "" || !e.hasher.Verify(code, rec.CodeHash) {
		return nil, ErrCodeInvalid
	}

	if err := e.codes.MarkConsumed(ctx, accountID, purpose); err != nil {
		return nil, err
	}

	return rec, nil
}

package classicmatch

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxCallSignLength = 40
	minPasswordLength = 8
)

var emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// SignupResult reports a created account and the session minted for it.
type SignupResult struct {
	Account AccountRecord
}

// Signup validates and normalizes the form input, creates the account with
// a hashed credential, and issues a confirmation code. The account starts
// unverified; ConfirmEmail flips it. Duplicate email and duplicate call
// sign (compared case-insensitively) return their respective conflict
// sentinels.
func (e *Engine) Signup(ctx context.Context, in SignupInput) (*SignupResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	norm, err := e.normalizeSignup(in)
	if err != nil {
		return nil, err
	}

	if err := e.checkSignupConflicts(ctx, norm); err != nil {
		e.emit(ctx, AuditEvent{
			EventType: EventSignupConflict,
			Email:     norm.Email,
			Error:     err.Error(),
		})
		return nil, err
	}

	hash, err := e.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	account, err := e.accounts.Create(ctx, CreateAccountInput{
		Email:        norm.Email,
		CallSign:     norm.CallSign,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	e.emit(ctx, AuditEvent{
		EventType: EventSignupCreated,
		AccountID: account.ID,
		Email:     account.Email,
		Success:   true,
	})

	if err := e.issueCode(ctx, account, PurposeConfirmation, EventCodeIssued); err != nil {
		return nil, err
	}

	return &SignupResult{Account: *account}, nil
}

// Account returns the account behind a session subject ID.
func (e *Engine) Account(ctx context.Context, id string) (*AccountRecord, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	return e.accounts.GetByID(ctx, id)
}

// ValidateSignup runs the same validation and conflict checks as Signup
// without creating anything. It backs the pre-submit validation endpoint.
func (e *Engine) ValidateSignup(ctx context.Context, in SignupInput) error {
	if !e.ready() {
		return ErrEngineNotReady
	}

	norm, err := e.normalizeSignup(in)
	if err != nil {
		return err
	}

	return e.checkSignupConflicts(ctx, norm)
}

func (e *Engine) normalizeSignup(in SignupInput) (SignupInput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	callSign := strings.TrimSpace(in.CallSign)

	if email == "" || !emailPattern.MatchString(email) {
		return SignupInput{}, fmt.Errorf("%w: email is malformed", ErrInvalidInput)
	}
	if callSign == "" {
		return SignupInput{}, fmt.Errorf("%w: call sign is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(callSign) > maxCallSignLength {
		return SignupInput{}, fmt.Errorf("%w: call sign exceeds %d characters", ErrInvalidInput, maxCallSignLength)
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return SignupInput{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	return SignupInput{
		Email:    email,
		CallSign: callSign,
		Password: in.Password,
	}, nil
}

func (e *Engine) checkSignupConflicts(ctx context.Context, norm SignupInput) error {
	_, err := e.accounts.GetByEmail(ctx, norm.Email)
	switch {
	case err == nil:
		return ErrEmailTaken
	case !isNotFound(err):
		return err
	}

	taken, err := e.accounts.CallSignTaken(ctx, strings.ToLower(norm.CallSign))
	if err != nil {
		return err
	}
	if taken {
		return ErrCallSignTaken
	}

	return nil
}

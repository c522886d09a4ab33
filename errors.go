package classicmatch

import "errors"

var (
	// ErrEngineNotReady is returned when an Engine method is called on a nil
	// or unbuilt engine.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrInvalidInput is the base error for malformed operation input; the
	// wrapping message carries the field-level detail.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike, so login never reveals whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLoginRateLimited is returned when the optional login throttle is
	// enabled and the caller exceeded its window.
	ErrLoginRateLimited = errors.New("login rate limited")
	// ErrAccountNotFound is returned when an operation targets an account
	// that does not exist and the absence is safe to reveal.
	ErrAccountNotFound = errors.New("account not found")
	// ErrEmailTaken is returned on signup when the normalized email is
	// already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrCallSignTaken is returned on signup when the call sign is already
	// in use, compared case-insensitively.
	ErrCallSignTaken = errors.New("call sign already in use")
	// ErrCodeNotFound is returned when no outstanding one-time code exists
	// for the account and purpose.
	ErrCodeNotFound = errors.New("one-time code not found")
	// ErrCodeInvalid is returned when the supplied one-time code does not
	// match the outstanding one.
	ErrCodeInvalid = errors.New("one-time code does not match")
	// ErrCodeExpired is returned when the outstanding code aged out; callers
	// show "request a new code" rather than "wrong code".
	ErrCodeExpired = errors.New("one-time code expired")
	// ErrCodeConsumed is returned when the outstanding code was already used
	// once. A code never verifies twice.
	ErrCodeConsumed = errors.New("one-time code already used")
	// ErrAdminNotConfigured is returned by AdminLogin when no admin
	// credential pair is configured. This is an operator error, not a user
	// error.
	ErrAdminNotConfigured = errors.New("admin credentials not configured")
	// ErrStorageUnavailable wraps persistence-layer failures. The detail is
	// for server-side logs; clients see a generic retryable failure.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

func isNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}

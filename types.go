package classicmatch

import (
	"context"
	"time"
)

// CodePurpose distinguishes the two one-time code flows. Each account holds
// at most one outstanding code per purpose.
type CodePurpose string

const (
	// PurposeConfirmation codes prove control of the signup email address.
	PurposeConfirmation CodePurpose = "confirmation"
	// PurposeReset codes authorize a password reset.
	PurposeReset CodePurpose = "reset"
)

// AccountRecord is the account shape the engine works with. The storage
// backend owns the full row; the engine only reads and writes these fields.
type AccountRecord struct {
	ID           string
	Email        string
	CallSign     string
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateAccountInput is passed to AccountProvider.Create after the engine
// has normalized and validated the signup.
type CreateAccountInput struct {
	Email        string // already trimmed and lowercased
	CallSign     string // trimmed, original casing preserved
	PasswordHash string
}

// AccountProvider is the storage interface the engine requires for account
// rows. Implementations must return the package sentinel errors where
// documented and wrap everything else in ErrStorageUnavailable.
type AccountProvider interface {
	// GetByEmail looks up an account by normalized email. Returns
	// ErrAccountNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*AccountRecord, error)
	// GetByID returns ErrAccountNotFound when absent.
	GetByID(ctx context.Context, id string) (*AccountRecord, error)
	// Create inserts a new account. Returns ErrEmailTaken or ErrCallSignTaken
	// on a uniqueness violation.
	Create(ctx context.Context, in CreateAccountInput) (*AccountRecord, error)
	// UpdatePasswordHash replaces the stored credential.
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	// MarkVerified flags the account as email-confirmed.
	MarkVerified(ctx context.Context, id string) error
	// CallSignTaken reports whether the lowercased call sign is in use.
	CallSignTaken(ctx context.Context, lowerCallSign string) (bool, error)
}

// CodeRecord is one outstanding one-time code. The plaintext code is never
// stored; CodeHash is a password-grade scrypt hash.
type CodeRecord struct {
	AccountID string
	Email     string
	Purpose   CodePurpose
	CodeHash  string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Consumed  bool
}

// CodeStore persists one-time codes with at-most-one-per-account-and-purpose
// semantics. Upsert overwrites any prior outstanding code: concurrent
// issuance races resolve last-writer-wins with no extra locking.
type CodeStore interface {
	Upsert(ctx context.Context, rec CodeRecord) error
	// Get returns ErrCodeNotFound when no code exists for the pair.
	Get(ctx context.Context, accountID string, purpose CodePurpose) (*CodeRecord, error)
	MarkConsumed(ctx context.Context, accountID string, purpose CodePurpose) error
}

// Notifier delivers an issued code to the account holder. Delivery is
// fire-and-forget from the engine's perspective: a send failure is audited
// but does not fail the issuing operation.
type Notifier interface {
	SendCode(ctx context.Context, account AccountRecord, purpose CodePurpose, code string, expiresAt time.Time) error
}

// Transactor is optionally implemented by an AccountProvider whose backing
// store can group the side effects of a password-reset completion (password
// update + code consumption) into one transaction. Without it the engine
// falls back to sequential writes.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(accounts AccountProvider, codes CodeStore) error) error
}

// SignupInput is the raw signup form content. The engine trims, normalizes,
// and validates before touching storage.
type SignupInput struct {
	Email    string
	CallSign string
	Password string
}

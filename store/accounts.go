package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"classicmatch"
)

const uniqueViolationCode = "23505"

// Accounts implements classicmatch.AccountProvider on gorm. It also
// implements classicmatch.Transactor so password resets commit atomically.
type Accounts struct {
	db *gorm.DB
}

// NewAccounts wraps the shared gorm handle.
func NewAccounts(db *gorm.DB) *Accounts {
	return &Accounts{db: db}
}

// GetByEmail implements classicmatch.AccountProvider.
func (a *Accounts) GetByEmail(ctx context.Context, email string) (*classicmatch.AccountRecord, error) {
	var row Account
	err := a.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, classicmatch.ErrAccountNotFound
		}
		return nil, wrapStorage(err)
	}
	return toRecord(row), nil
}

// GetByID implements classicmatch.AccountProvider.
func (a *Accounts) GetByID(ctx context.Context, id string) (*classicmatch.AccountRecord, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return nil, classicmatch.ErrAccountNotFound
	}

	var row Account
	err = a.db.WithContext(ctx).Where("id = ?", accountID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, classicmatch.ErrAccountNotFound
		}
		return nil, wrapStorage(err)
	}
	return toRecord(row), nil
}

// Create implements classicmatch.AccountProvider. Unique violations map
// back to the conflict sentinels by constraint name, so the race between
// the pre-check and the insert still yields the right error.
func (a *Accounts) Create(ctx context.Context, in classicmatch.CreateAccountInput) (*classicmatch.AccountRecord, error) {
	row := Account{
		Email:         in.Email,
		CallSign:      in.CallSign,
		CallSignLower: strings.ToLower(in.CallSign),
		PasswordHash:  in.PasswordHash,
	}

	if err := a.db.WithContext(ctx).Create(&row).Error; err != nil {
		if conflict := conflictFor(err); conflict != nil {
			return nil, conflict
		}
		return nil, wrapStorage(err)
	}
	return toRecord(row), nil
}

// UpdatePasswordHash implements classicmatch.AccountProvider.
func (a *Accounts) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return a.updateColumn(ctx, id, "password_hash", hash)
}

// MarkVerified implements classicmatch.AccountProvider.
func (a *Accounts) MarkVerified(ctx context.Context, id string) error {
	return a.updateColumn(ctx, id, "verified", true)
}

func (a *Accounts) updateColumn(ctx context.Context, id, column string, value any) error {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return classicmatch.ErrAccountNotFound
	}

	result := a.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", accountID).
		Update(column, value)
	if result.Error != nil {
		return wrapStorage(result.Error)
	}
	if result.RowsAffected == 0 {
		return classicmatch.ErrAccountNotFound
	}
	return nil
}

// CallSignTaken implements classicmatch.AccountProvider.
func (a *Accounts) CallSignTaken(ctx context.Context, lowerCallSign string) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&Account{}).
		Where("call_sign_lower = ?", lowerCallSign).
		Count(&count).Error
	if err != nil {
		return false, wrapStorage(err)
	}
	return count > 0, nil
}

// InTransaction implements classicmatch.Transactor. The callback sees
// providers bound to the transaction handle; any error rolls back.
func (a *Accounts) InTransaction(ctx context.Context, fn func(accounts classicmatch.AccountProvider, codes classicmatch.CodeStore) error) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewAccounts(tx), NewCodes(tx))
	})
}

func toRecord(row Account) *classicmatch.AccountRecord {
	return &classicmatch.AccountRecord{
		ID:           row.ID.String(),
		Email:        row.Email,
		CallSign:     row.CallSign,
		PasswordHash: row.PasswordHash,
		Verified:     row.Verified,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func conflictFor(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return classicmatch.ErrEmailTaken
		}
		return nil
	}

	switch pgErr.ConstraintName {
	case constraintAccountCallSign:
		return classicmatch.ErrCallSignTaken
	default:
		return classicmatch.ErrEmailTaken
	}
}

func wrapStorage(err error) error {
	return fmt.Errorf("%w: %v", classicmatch.ErrStorageUnavailable, err)
}

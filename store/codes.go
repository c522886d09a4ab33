package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"classicmatch"
)

// Codes implements classicmatch.CodeStore on gorm. The account+purpose
// unique index plus ON CONFLICT upsert give at-most-one outstanding code
// with last-writer-wins semantics.
type Codes struct {
	db *gorm.DB
}

// NewCodes wraps the shared gorm handle.
func NewCodes(db *gorm.DB) *Codes {
	return &Codes{db: db}
}

// Upsert implements classicmatch.CodeStore.
func (c *Codes) Upsert(ctx context.Context, rec classicmatch.CodeRecord) error {
	accountID, err := uuid.Parse(rec.AccountID)
	if err != nil {
		return classicmatch.ErrAccountNotFound
	}

	row := OneTimeCode{
		AccountID: accountID,
		Purpose:   string(rec.Purpose),
		Email:     rec.Email,
		CodeHash:  rec.CodeHash,
		IssuedAt:  rec.IssuedAt,
		ExpiresAt: rec.ExpiresAt,
		Consumed:  rec.Consumed,
	}

	err = c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}, {Name: "purpose"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "code_hash", "issued_at", "expires_at", "consumed",
		}),
	}).Create(&row).Error
	if err != nil {
		return wrapStorage(err)
	}
	return nil
}

// Get implements classicmatch.CodeStore.
func (c *Codes) Get(ctx context.Context, accountID string, purpose classicmatch.CodePurpose) (*classicmatch.CodeRecord, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, classicmatch.ErrCodeNotFound
	}

	var row OneTimeCode
	err = c.db.WithContext(ctx).
		Where("account_id = ? AND purpose = ?", id, string(purpose)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, classicmatch.ErrCodeNotFound
		}
		return nil, wrapStorage(err)
	}

	return &classicmatch.CodeRecord{
		AccountID: row.AccountID.String(),
		Email:     row.Email,
		Purpose:   classicmatch.CodePurpose(row.Purpose),
		CodeHash:  row.CodeHash,
		IssuedAt:  row.IssuedAt,
		ExpiresAt: row.ExpiresAt,
		Consumed:  row.Consumed,
	}, nil
}

// MarkConsumed implements classicmatch.CodeStore.
func (c *Codes) MarkConsumed(ctx context.Context, accountID string, purpose classicmatch.CodePurpose) error {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return classicmatch.ErrCodeNotFound
	}

	result := c.db.WithContext(ctx).
		Model(&OneTimeCode{}).
		Where("account_id = ? AND purpose = ?", id, string(purpose)).
		Update("consumed", true)
	if result.Error != nil {
		return wrapStorage(result.Error)
	}
	if result.RowsAffected == 0 {
		return classicmatch.ErrCodeNotFound
	}
	return nil
}

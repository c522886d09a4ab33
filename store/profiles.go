package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"classicmatch"
)

// ProfileRecord is the engine-facing shape of a member profile.
type ProfileRecord struct {
	AccountID string
	Eras      []string
	Moods     []string
	Bio       string
	Agreed    bool
}

// Profiles persists member matching profiles with one-row-per-account
// upsert semantics.
type Profiles struct {
	db *gorm.DB
}

// NewProfiles wraps the shared gorm handle.
func NewProfiles(db *gorm.DB) *Profiles {
	return &Profiles{db: db}
}

// Upsert creates or replaces the account's profile.
func (p *Profiles) Upsert(ctx context.Context, rec ProfileRecord) error {
	accountID, err := uuid.Parse(rec.AccountID)
	if err != nil {
		return classicmatch.ErrAccountNotFound
	}

	eras, err := json.Marshal(rec.Eras)
	if err != nil {
		return wrapStorage(err)
	}
	moods, err := json.Marshal(rec.Moods)
	if err != nil {
		return wrapStorage(err)
	}

	row := Profile{
		AccountID: accountID,
		Eras:      datatypes.JSON(eras),
		Moods:     datatypes.JSON(moods),
		Bio:       rec.Bio,
		Agreed:    rec.Agreed,
	}

	err = p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"eras", "moods", "bio", "agreed",
		}),
	}).Create(&row).Error
	if err != nil {
		return wrapStorage(err)
	}
	return nil
}

// Get returns the account's profile, or classicmatch.ErrAccountNotFound
// when none exists.
func (p *Profiles) Get(ctx context.Context, accountID string) (*ProfileRecord, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, classicmatch.ErrAccountNotFound
	}

	var row Profile
	err = p.db.WithContext(ctx).Where("account_id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, classicmatch.ErrAccountNotFound
		}
		return nil, wrapStorage(err)
	}

	rec := &ProfileRecord{
		AccountID: row.AccountID.String(),
		Bio:       row.Bio,
		Agreed:    row.Agreed,
	}
	if err := json.Unmarshal(row.Eras, &rec.Eras); err != nil {
		return nil, wrapStorage(err)
	}
	if err := json.Unmarshal(row.Moods, &rec.Moods); err != nil {
		return nil, wrapStorage(err)
	}
	return rec, nil
}

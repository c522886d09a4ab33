package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Named unique constraints, used to map violation errors back to the
// engine's conflict sentinels.
const (
	constraintAccountEmail    = "uni_accounts_email"
	constraintAccountCallSign = "uni_accounts_call_sign_lower"
	constraintCodePair        = "uni_one_time_codes_account_purpose"
)

// Account is one registered member.
type Account struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	// Email is stored lowercased; normalization happens in the engine.
	Email    string `gorm:"type:text;not null;uniqueIndex:uni_accounts_email"`
	CallSign string `gorm:"type:text;not null"`
	// CallSignLower backs the case-insensitive uniqueness of call signs.
	CallSignLower string    `gorm:"type:text;not null;uniqueIndex:uni_accounts_call_sign_lower"`
	PasswordHash  string    `gorm:"type:text;not null"`
	Verified      bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`

	Codes   []OneTimeCode `gorm:"constraint:OnDelete:CASCADE;foreignKey:AccountID"`
	Profile *Profile      `gorm:"constraint:OnDelete:CASCADE;foreignKey:AccountID"`
}

// OneTimeCode holds at most one outstanding code per account and purpose.
// Only the scrypt hash of the code is stored.
type OneTimeCode struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uni_one_time_codes_account_purpose"`
	Purpose   string    `gorm:"type:text;not null;uniqueIndex:uni_one_time_codes_account_purpose"`
	Email     string    `gorm:"type:text;not null"`
	CodeHash  string    `gorm:"type:text;not null"`
	IssuedAt  time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Consumed  bool      `gorm:"not null;default:false"`
}

// Profile is the member's public matching profile.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	// Eras and Moods are JSON string arrays; the handler validates their
	// cardinality before they reach storage.
	Eras      datatypes.JSON `gorm:"not null"`
	Moods     datatypes.JSON `gorm:"not null"`
	Bio       string         `gorm:"type:text"`
	Agreed    bool           `gorm:"not null;default:false"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

// ChatMessage is one public chat entry. The table is kept to a sliding
// window by the retention sweep.
type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	CallSign  string    `gorm:"type:text;not null"`
	Body      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// ContactMessage is one member-to-operators contact form submission.
type ContactMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	Email     string    `gorm:"type:text;not null"`
	Subject   string    `gorm:"type:text;not null"`
	Body      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

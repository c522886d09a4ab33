package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"classicmatch"
)

// ContactRecord is one stored contact form submission.
type ContactRecord struct {
	ID        string
	AccountID string
	Email     string
	Subject   string
	Body      string
	CreatedAt time.Time
}

// Contact persists member contact form submissions for the operators.
type Contact struct {
	db *gorm.DB
}

// NewContact wraps the shared gorm handle.
func NewContact(db *gorm.DB) *Contact {
	return &Contact{db: db}
}

// Submit stores one submission.
func (c *Contact) Submit(ctx context.Context, accountID, email, subject, body string) (*ContactRecord, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, classicmatch.ErrAccountNotFound
	}

	row := ContactMessage{
		AccountID: id,
		Email:     email,
		Subject:   subject,
		Body:      body,
	}
	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, wrapStorage(err)
	}

	return &ContactRecord{
		ID:        row.ID.String(),
		AccountID: row.AccountID.String(),
		Email:     row.Email,
		Subject:   row.Subject,
		Body:      row.Body,
		CreatedAt: row.CreatedAt,
	}, nil
}

// Recent returns the newest submissions for the admin view, newest first.
func (c *Contact) Recent(ctx context.Context, limit int) ([]ContactRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []ContactMessage
	err := c.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, wrapStorage(err)
	}

	records := make([]ContactRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, ContactRecord{
			ID:        row.ID.String(),
			AccountID: row.AccountID.String(),
			Email:     row.Email,
			Subject:   row.Subject,
			Body:      row.Body,
			CreatedAt: row.CreatedAt,
		})
	}
	return records, nil
}

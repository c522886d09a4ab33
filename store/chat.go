package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"classicmatch"
)

// Chat window and retention, matching the public chat contract: at most
// chatWindow messages are returned, and nothing older than chatRetention
// survives a sweep.
const (
	chatWindow    = 100
	chatRetention = 24 * time.Hour
)

// ChatRecord is one public chat message as served to clients.
type ChatRecord struct {
	ID        string
	AccountID string
	CallSign  string
	Body      string
	CreatedAt time.Time
}

// Chat persists the public chat feed.
type Chat struct {
	db  *gorm.DB
	now func() time.Time
}

// NewChat wraps the shared gorm handle.
func NewChat(db *gorm.DB) *Chat {
	return &Chat{db: db, now: time.Now}
}

// Post appends a message to the feed.
func (c *Chat) Post(ctx context.Context, accountID, callSign, body string) (*ChatRecord, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, classicmatch.ErrAccountNotFound
	}

	row := ChatMessage{
		AccountID: id,
		CallSign:  callSign,
		Body:      body,
	}
	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, wrapStorage(err)
	}
	return toChatRecord(row), nil
}

// Recent returns the newest messages inside the retention window, oldest
// first, capped at the window size.
func (c *Chat) Recent(ctx context.Context) ([]ChatRecord, error) {
	cutoff := c.now().Add(-chatRetention)

	var rows []ChatMessage
	err := c.db.WithContext(ctx).
		Where("created_at >= ?", cutoff).
		Order("created_at DESC").
		Limit(chatWindow).
		Find(&rows).Error
	if err != nil {
		return nil, wrapStorage(err)
	}

	records := make([]ChatRecord, len(rows))
	for i, row := range rows {
		records[len(rows)-1-i] = *toChatRecord(row)
	}
	return records, nil
}

// Sweep deletes messages older than the retention window and returns how
// many were removed. Run it periodically from the host.
func (c *Chat) Sweep(ctx context.Context) (int64, error) {
	cutoff := c.now().Add(-chatRetention)

	result := c.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&ChatMessage{})
	if result.Error != nil {
		return 0, wrapStorage(result.Error)
	}
	return result.RowsAffected, nil
}

func toChatRecord(row ChatMessage) *ChatRecord {
	return &ChatRecord{
		ID:        row.ID.String(),
		AccountID: row.AccountID.String(),
		CallSign:  row.CallSign,
		Body:      row.Body,
		CreatedAt: row.CreatedAt,
	}
}

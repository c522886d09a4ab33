// Package store is the PostgreSQL persistence layer. It implements the
// engine's AccountProvider and CodeStore contracts plus the community
// surfaces (profiles, public chat, contact messages) on gorm.
package store

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect establishes a PostgreSQL backed gorm session and runs the schema
// migration. The returned handle is constructed once at startup and
// injected everywhere it is needed.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := database.WithContext(ctx).AutoMigrate(
		&Account{},
		&OneTimeCode{},
		&Profile{},
		&ChatMessage{},
		&ContactMessage{},
	); err != nil {
		return nil, err
	}

	return database, nil
}

// Close releases the underlying sql.DB resources for the gorm handle.
func Close(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

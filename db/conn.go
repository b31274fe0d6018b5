// Package db contains everything related to opening the database
package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dormhub/room-api/internal/model"
)

// New opens the configured database and migrates the schema. driver is either
// "sqlite" (dsn is a file path) or "postgres" (dsn is a connection string)
func New(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	db, err := gorm.Open(dialector)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database, %w", driver, err)
	}

	err = db.AutoMigrate(model.User{}, model.VerificationRecord{}, model.Room{}, model.Bed{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}

package database

import (
	"fmt"
	"time"

	"sarisari-pos/internal/database/models"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrDSNRequired = errors.New("DSN is required")

func NewConnection(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, ErrDSNRequired
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open journal database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}

	// one terminal, one writer
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	return db, nil
}

func MigrateJournalDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.SaleRecord{}, &models.SaleLineRecord{}); err != nil {
		return errors.Wrap(err, "failed to migrate journal tables")
	}
	return nil
}

package postgres

import (
	"fmt"
	"log/slog"
	"time"

	"courierbot/internal/adapters/out/postgres/courierrepo"
	"courierbot/internal/adapters/out/postgres/orderrepo"
	"courierbot/internal/adapters/out/postgres/settingsrepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a libpq connection string.
func DSN(host, port, user, password, dbName, sslMode string) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode,
	)
}

// Open connects to dsn. Slow statements are reported through log.
func Open(dsn string, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.NewSlogLogger(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table the adapter uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&courierrepo.LargeOrderCountDTO{},
		&courierrepo.InactiveCourierDTO{},
		&settingsrepo.SettingDTO{},
	)
}

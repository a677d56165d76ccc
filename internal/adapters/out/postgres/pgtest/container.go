// Package pgtest starts a throwaway PostgreSQL for integration suites.
package pgtest

import (
	"context"
	"time"

	"courierbot/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Database is a migrated database inside a running container.
type Database struct {
	Container *tcpostgres.PostgresContainer
	DB        *gorm.DB
}

func Start(ctx context.Context) (*Database, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err = postgres.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db}, nil
}

// Truncate empties every table between tests.
func (d *Database) Truncate() error {
	return d.DB.Exec(
		"TRUNCATE TABLE orders, courier_large_order_counts, inactive_couriers, settings",
	).Error
}

func (d *Database) Terminate(ctx context.Context) error {
	return d.Container.Terminate(ctx)
}

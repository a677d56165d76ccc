package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories returned after
// Begin take part in the transaction; nothing they write is visible to other
// units of work before Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	LargeOrderCountRepository() LargeOrderCountRepository
	CourierActivityRepository() CourierActivityRepository
	SettingsRepository() SettingsRepository
}

// Package postgres provides the GORM implementation of the unit of work.
//
// Repositories obtained after Begin run inside the transaction; without Begin
// they run on the connection pool and every statement commits on its own,
// which is how queries read.
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.LargeOrderCountRepository().Increment(ctx, week, courierID); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"courierbot/internal/adapters/out/postgres/courierrepo"
	"courierbot/internal/adapters/out/postgres/orderrepo"
	"courierbot/internal/adapters/out/postgres/settingsrepo"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh UnitOfWork. Instances are not safe for concurrent
// use; every business operation creates its own.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errs.NewPersistenceError("begin transaction", tx.Error)
	}
	uow.tx = tx
	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return errs.NewPersistenceError("commit transaction", err)
	}
	return nil
}

// Rollback returns gorm.ErrInvalidTransaction after Commit, which callers
// that defer it ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) LargeOrderCountRepository() ports.LargeOrderCountRepository {
	return courierrepo.NewGormLargeOrderCountRepository(uow.conn())
}

func (uow *GormUnitOfWork) CourierActivityRepository() ports.CourierActivityRepository {
	return courierrepo.NewGormCourierActivityRepository(uow.conn())
}

func (uow *GormUnitOfWork) SettingsRepository() ports.SettingsRepository {
	return settingsrepo.NewGormSettingsRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

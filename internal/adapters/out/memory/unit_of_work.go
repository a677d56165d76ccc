package memory

import (
	"context"
	"errors"

	"courierbot/internal/core/ports"
)

var ErrNoTransaction = errors.New("no active transaction")

// op is a buffered write applied to a working copy of the state.
type op func(st *state) error

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork buffers writes between Begin and Commit; reads see committed
// state only. Without Begin every write is applied immediately. There are no
// row locks: callers serialize conflicting work with the concurrency guard.
type UnitOfWork struct {
	store  *Store
	active bool
	ops    []op
}

func (u *UnitOfWork) Begin(context.Context) error {
	if u.active {
		return nil
	}
	u.active = true
	u.ops = nil
	return nil
}

func (u *UnitOfWork) Commit(context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	ops := u.ops
	u.active = false
	u.ops = nil

	return u.store.apply(ops)
}

func (u *UnitOfWork) Rollback(context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.active = false
	u.ops = nil
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: u}
}

func (u *UnitOfWork) LargeOrderCountRepository() ports.LargeOrderCountRepository {
	return &LargeOrderCountRepository{uow: u}
}

func (u *UnitOfWork) CourierActivityRepository() ports.CourierActivityRepository {
	return &CourierActivityRepository{uow: u}
}

func (u *UnitOfWork) SettingsRepository() ports.SettingsRepository {
	return &SettingsRepository{uow: u}
}

// write buffers o inside a transaction or applies it at once outside one.
func (u *UnitOfWork) write(o op) error {
	if u.active {
		u.ops = append(u.ops, o)
		return nil
	}
	return u.store.apply([]op{o})
}

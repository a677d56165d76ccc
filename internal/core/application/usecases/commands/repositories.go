// Package commands contains the use cases that change order, dispatch and
// session state. Every command is built by its constructor and handled by a
// handler that owns transaction boundaries and locking.
package commands

import (
	"context"

	"courierbot/internal/core/ports"
)

// Unit of work views narrowed to what each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	LargeOrderCountRepoFactory interface {
		LargeOrderCountRepository() ports.LargeOrderCountRepository
	}

	CourierActivityRepoFactory interface {
		CourierActivityRepository() ports.CourierActivityRepository
	}

	SettingsRepoFactory interface {
		SettingsRepository() ports.SettingsRepository
	}

	// OrderUoW serves transitions that touch only the order record.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SubmitUoW serves order creation, which reads the intake switch.
	SubmitUoW interface {
		TxManager
		OrderRepoFactory
		SettingsRepoFactory
	}

	SubmitUoWFactory interface {
		Create() SubmitUoW
	}

	// SettingsUoW serves the admin switches.
	SettingsUoW interface {
		TxManager
		SettingsRepoFactory
	}

	SettingsUoWFactory interface {
		Create() SettingsUoW
	}

	CourierActivityUoW interface {
		TxManager
		CourierActivityRepoFactory
	}

	CourierActivityUoWFactory interface {
		Create() CourierActivityUoW
	}

	// UoW spans orders and dispatch state. Acceptance needs all of it in one
	// transaction so that the order update and the count increment commit
	// together.
	//
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//   ...
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		LargeOrderCountRepoFactory
		CourierActivityRepoFactory
		SettingsRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

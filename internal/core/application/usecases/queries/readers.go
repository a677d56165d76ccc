// Package queries contains the read-only use cases. Queries read committed
// state through the storage ports and never open a transaction.
package queries

import (
	"courierbot/internal/core/ports"
)

type (
	OrderReader interface {
		OrderRepository() ports.OrderRepository
	}

	OrderReaderFactory interface {
		Create() OrderReader
	}

	DispatchReader interface {
		LargeOrderCountRepository() ports.LargeOrderCountRepository
		CourierActivityRepository() ports.CourierActivityRepository
		SettingsRepository() ports.SettingsRepository
	}

	DispatchReaderFactory interface {
		Create() DispatchReader
	}
)

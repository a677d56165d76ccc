// Package ports defines the contracts between the core and its adapters.
package ports

import (
	"context"
	"iter"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
)

// OrderRepository stores orders keyed by (workday, display number).
type OrderRepository interface {
	// NextDisplayNo returns max(display_no in workday) + 1, or 1 for an empty
	// workday. Callers hold the workday lock until the new order is added.
	NextDisplayNo(ctx context.Context, workday kernel.WorkdayKey) (int, error)

	// Add inserts a new order. A taken display number yields
	// order.ErrDuplicateDisplayNo.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update overwrites the stored record. A missing record yields
	// errs.ObjectNotFoundError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when no order has that number in
	// the workday.
	Get(ctx context.Context, workday kernel.WorkdayKey, displayNo int) (*order.Order, error)

	// GetForUpdate is Get plus a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, workday kernel.WorkdayKey, displayNo int) (*order.Order, error)

	// FindByDeliveryNo returns every order carrying the code; codes collide.
	FindByDeliveryNo(ctx context.Context, deliveryNo string) ([]*order.Order, error)

	// ListByStatus returns orders of the workday range [from, to] in one of the
	// given statuses, ordered by workday then display number.
	ListByStatus(ctx context.Context, from, to kernel.WorkdayKey, statuses ...order.Status) ([]*order.Order, error)

	// Scan lazily iterates the workday range [from, to] in (workday, display
	// number) order. Each call starts a fresh iteration.
	Scan(ctx context.Context, from, to kernel.WorkdayKey) iter.Seq2[*order.Order, error]
}

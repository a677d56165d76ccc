package ports

import (
	"context"

	"courierbot/internal/core/domain/model/kernel"
)

// LargeOrderCountRepository keeps week → courier → large-order count.
type LargeOrderCountRepository interface {
	CountsForWeek(ctx context.Context, week kernel.WeekKey) (map[int64]int, error)

	// Increment adds one to the courier's count for the week. It is called
	// exactly once per accepted large order and never undone.
	Increment(ctx context.Context, week kernel.WeekKey, courierID int64) error
}

// CourierActivityRepository is the durable set of inactive couriers.
// Marking is idempotent.
type CourierActivityRepository interface {
	MarkInactive(ctx context.Context, courierID int64) error
	MarkActive(ctx context.Context, courierID int64) error
	IsActive(ctx context.Context, courierID int64) (bool, error)
	ListInactive(ctx context.Context) ([]int64, error)
}

// SettingsRepository holds runtime switches that survive restarts.
// The found flag is false when the value was never stored.
type SettingsRepository interface {
	BalanceLimit(ctx context.Context) (limit int, found bool, err error)
	SetBalanceLimit(ctx context.Context, limit int) error
	IntakeOpen(ctx context.Context) (open bool, found bool, err error)
	SetIntakeOpen(ctx context.Context, open bool) error
}

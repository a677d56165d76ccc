package commands

import (
	"errors"
	"fmt"
	"time"

	"courierbot/internal/pkg/errs"
	"courierbot/internal/pkg/guard"
)

var ErrNotifyLateDeliveriesCommandIsNotConstructed = errors.New(
	"NotifyLateDeliveriesCommand must be created via NewNotifyLateDeliveriesCommand constructor",
)

// NotifyLateDeliveriesCommand reports accepted orders that have been on the
// road longer than the threshold.
type NotifyLateDeliveriesCommand struct {
	threshold time.Duration

	guard guard.ConstructorGuard
}

func NewNotifyLateDeliveriesCommand(threshold time.Duration) (NotifyLateDeliveriesCommand, error) {
	if threshold <= 0 {
		return NotifyLateDeliveriesCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"late delivery threshold", fmt.Errorf("%s is not positive", threshold),
		)
	}
	return NotifyLateDeliveriesCommand{threshold: threshold, guard: guard.NewConstructorGuard()}, nil
}

func (c NotifyLateDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrNotifyLateDeliveriesCommandIsNotConstructed)
}

func (c NotifyLateDeliveriesCommand) Threshold() time.Duration {
	return c.threshold
}

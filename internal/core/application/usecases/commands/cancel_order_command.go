package commands

import (
	"errors"

	"courierbot/internal/pkg/errs"
	"courierbot/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand is the holding courier giving up an accepted order.
type CancelOrderCommand struct {
	ref       OrderRef
	courierID int64

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(ref OrderRef, courierID int64) (CancelOrderCommand, error) {
	var actorErr error
	if courierID <= 0 {
		actorErr = errs.NewValueIsRequiredError("courier id")
	}
	if err := errors.Join(ref.validate(), actorErr); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		ref:       ref,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) Ref() OrderRef {
	return c.ref
}

func (c CancelOrderCommand) CourierID() int64 {
	return c.courierID
}

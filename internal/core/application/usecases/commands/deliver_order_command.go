package commands

import (
	"errors"

	"courierbot/internal/pkg/errs"
	"courierbot/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand is the holding courier confirming delivery.
type DeliverOrderCommand struct {
	ref       OrderRef
	courierID int64

	guard guard.ConstructorGuard
}

func NewDeliverOrderCommand(ref OrderRef, courierID int64) (DeliverOrderCommand, error) {
	var actorErr error
	if courierID <= 0 {
		actorErr = errs.NewValueIsRequiredError("courier id")
	}
	if err := errors.Join(ref.validate(), actorErr); err != nil {
		return DeliverOrderCommand{}, err
	}

	return DeliverOrderCommand{
		ref:       ref,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) Ref() OrderRef {
	return c.ref
}

func (c DeliverOrderCommand) CourierID() int64 {
	return c.courierID
}

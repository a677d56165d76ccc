package commands

import (
	"errors"

	"courierbot/internal/core/domain/model/courier"
	"courierbot/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is a courier pressing "accept" on a pending order.
type AcceptOrderCommand struct {
	ref     OrderRef
	courier courier.Courier

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(ref OrderRef, c courier.Courier) (AcceptOrderCommand, error) {
	if err := errors.Join(ref.validate(), c.Validate()); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		ref:     ref,
		courier: c,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) Ref() OrderRef {
	return c.ref
}

func (c AcceptOrderCommand) Courier() courier.Courier {
	return c.courier
}

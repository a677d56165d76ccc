package commands

import (
	"errors"

	"courierbot/internal/pkg/errs"
	"courierbot/internal/pkg/guard"
)

var ErrDenyOrderCommandIsNotConstructed = errors.New(
	"DenyOrderCommand must be created via NewDenyOrderCommand constructor",
)

// DenyOrderCommand is an administrator rejecting a pending order.
type DenyOrderCommand struct {
	ref     OrderRef
	adminID int64

	guard guard.ConstructorGuard
}

func NewDenyOrderCommand(ref OrderRef, adminID int64) (DenyOrderCommand, error) {
	var actorErr error
	if adminID <= 0 {
		actorErr = errs.NewValueIsRequiredError("admin id")
	}
	if err := errors.Join(ref.validate(), actorErr); err != nil {
		return DenyOrderCommand{}, err
	}

	return DenyOrderCommand{
		ref:     ref,
		adminID: adminID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DenyOrderCommand) Validate() error {
	return c.guard.Validate(ErrDenyOrderCommandIsNotConstructed)
}

func (c DenyOrderCommand) Ref() OrderRef {
	return c.ref
}

func (c DenyOrderCommand) AdminID() int64 {
	return c.adminID
}

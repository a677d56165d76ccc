package commands

import (
	"errors"

	"courierbot/internal/pkg/errs"
	"courierbot/internal/pkg/guard"
)

var ErrSetCourierActivityCommandIsNotConstructed = errors.New(
	"SetCourierActivityCommand must be created via NewSetCourierActivityCommand constructor",
)

// SetCourierActivityCommand takes a courier out of, or back into, balancing.
type SetCourierActivityCommand struct {
	adminID   int64
	courierID int64
	active    bool

	guard guard.ConstructorGuard
}

func NewSetCourierActivityCommand(adminID, courierID int64, active bool) (SetCourierActivityCommand, error) {
	if courierID <= 0 {
		return SetCourierActivityCommand{}, errs.NewValueIsRequiredError("courier id")
	}

	return SetCourierActivityCommand{
		adminID:   adminID,
		courierID: courierID,
		active:    active,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetCourierActivityCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierActivityCommandIsNotConstructed)
}

func (c SetCourierActivityCommand) AdminID() int64 {
	return c.adminID
}

func (c SetCourierActivityCommand) CourierID() int64 {
	return c.courierID
}

func (c SetCourierActivityCommand) Active() bool {
	return c.active
}

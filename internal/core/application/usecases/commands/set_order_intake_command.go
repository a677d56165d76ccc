package commands

import (
	"errors"

	"courierbot/internal/pkg/guard"
)

var ErrSetOrderIntakeCommandIsNotConstructed = errors.New(
	"SetOrderIntakeCommand must be created via NewSetOrderIntakeCommand constructor",
)

// SetOrderIntakeCommand opens or closes order intake. While closed, submit
// fails with ErrOrderIntakeClosed; orders already placed are unaffected.
type SetOrderIntakeCommand struct {
	adminID int64
	open    bool

	guard guard.ConstructorGuard
}

func NewSetOrderIntakeCommand(adminID int64, open bool) SetOrderIntakeCommand {
	return SetOrderIntakeCommand{
		adminID: adminID,
		open:    open,
		guard:   guard.NewConstructorGuard(),
	}
}

func (c SetOrderIntakeCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderIntakeCommandIsNotConstructed)
}

func (c SetOrderIntakeCommand) AdminID() int64 {
	return c.adminID
}

func (c SetOrderIntakeCommand) Open() bool {
	return c.open
}

package commands

import (
	"errors"
	"fmt"

	"courierbot/internal/pkg/errs"
	"courierbot/internal/pkg/guard"
)

var ErrSetBalanceLimitCommandIsNotConstructed = errors.New(
	"SetBalanceLimitCommand must be created via NewSetBalanceLimitCommand constructor",
)

// SetBalanceLimitCommand changes the allowed large-order spread between
// active couriers. The value is stored and survives restarts.
type SetBalanceLimitCommand struct {
	adminID int64
	limit   int

	guard guard.ConstructorGuard
}

func NewSetBalanceLimitCommand(adminID int64, limit int) (SetBalanceLimitCommand, error) {
	if limit < 0 {
		return SetBalanceLimitCommand{}, errs.NewValueIsInvalidErrorWithCause("balance limit", fmt.Errorf("%d is negative", limit))
	}

	return SetBalanceLimitCommand{
		adminID: adminID,
		limit:   limit,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetBalanceLimitCommand) Validate() error {
	return c.guard.Validate(ErrSetBalanceLimitCommandIsNotConstructed)
}

func (c SetBalanceLimitCommand) AdminID() int64 {
	return c.adminID
}

func (c SetBalanceLimitCommand) Limit() int {
	return c.limit
}

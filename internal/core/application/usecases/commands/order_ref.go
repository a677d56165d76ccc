package commands

import (
	"fmt"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/errs"
)

// OrderRef points at an order the way staff buttons do: by display number,
// optionally with the workday. A zero workday means "today, else the
// previous workday".
type OrderRef struct {
	Workday   kernel.WorkdayKey
	DisplayNo int
}

func (r OrderRef) validate() error {
	if r.DisplayNo <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("display number", fmt.Errorf("%d is not greater than 0", r.DisplayNo))
	}
	return nil
}

func (r OrderRef) String() string {
	if r.Workday.IsZero() {
		return fmt.Sprintf("#%d", r.DisplayNo)
	}
	return fmt.Sprintf("#%d (%s)", r.DisplayNo, r.Workday)
}

package queries

import (
	"errors"
	"fmt"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/errs"
	"courierbot/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery finds an order by display number. A zero workday searches
// today and then the previous workday.
type GetOrderQuery struct {
	workday   kernel.WorkdayKey
	displayNo int

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(workday kernel.WorkdayKey, displayNo int) (GetOrderQuery, error) {
	if displayNo <= 0 {
		return GetOrderQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"display number", fmt.Errorf("%d is not greater than 0", displayNo),
		)
	}
	return GetOrderQuery{workday: workday, displayNo: displayNo, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Workday() kernel.WorkdayKey {
	return q.workday
}

func (q GetOrderQuery) DisplayNo() int {
	return q.displayNo
}
